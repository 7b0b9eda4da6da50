package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongphuc2004/Music-Flow/platform/config"
)

// Connect opens the MongoDB connection and verifies it with a ping. It also
// creates the unique indexes the data model relies on (user email, topic name).
func Connect(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDB)
	ensureIndexes(ctx, db)

	log.Println("Connected to MongoDB")
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users":  {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"topics": {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			log.Printf("Error creating index on %s: %v", collection, err)
		}
	}
}

// Close disconnects the underlying client.
func Close(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v", err)
		return
	}
	log.Println("MongoDB connection closed")
}
