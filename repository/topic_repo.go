package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongphuc2004/Music-Flow/models"
)

type TopicRepo struct {
	collection *mongo.Collection
}

func NewTopicRepo(db *mongo.Database) *TopicRepo {
	return &TopicRepo{collection: db.Collection("topics")}
}

func (r *TopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	now := time.Now()
	topic.CreatedAt = now
	topic.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, topic)
	if err != nil {
		return mapWriteErr(err)
	}
	topic.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List returns all topics sorted by name.
func (r *TopicRepo) List(ctx context.Context) ([]models.Topic, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	topics := []models.Topic{}
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error) {
	var topic models.Topic
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&topic)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &topic, nil
}

// Update applies only the fields that are present in the request.
func (r *TopicRepo) Update(ctx context.Context, id primitive.ObjectID, name, description, imageURL, color *string) (*models.Topic, error) {
	set := bson.M{"updatedAt": time.Now()}
	if name != nil {
		set["name"] = *name
	}
	if description != nil {
		set["description"] = *description
	}
	if imageURL != nil {
		set["imageUrl"] = *imageURL
	}
	if color != nil {
		set["color"] = *color
	}

	var topic models.Topic
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&topic)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, mapFindErr(err)
	}
	return &topic, nil
}

func (r *TopicRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
