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

type PlaylistRepo struct {
	collection *mongo.Collection
}

func NewPlaylistRepo(db *mongo.Database) *PlaylistRepo {
	return &PlaylistRepo{collection: db.Collection("playlists")}
}

func (r *PlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Songs == nil {
		playlist.Songs = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		return err
	}
	playlist.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByOwner returns the owner's playlists, newest-created first.
func (r *PlaylistRepo) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	playlists := []models.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *PlaylistRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &playlist, nil
}

// Save persists the mutable fields of a loaded playlist. The owner reference
// is deliberately not part of the update: it is set once at creation.
func (r *PlaylistRepo) Save(ctx context.Context, playlist *models.Playlist) error {
	playlist.UpdatedAt = time.Now()

	result, err := r.collection.UpdateByID(ctx, playlist.ID, bson.M{"$set": bson.M{
		"name":        playlist.Name,
		"description": playlist.Description,
		"coverImage":  playlist.CoverImage,
		"isPublic":    playlist.IsPublic,
		"songs":       playlist.Songs,
		"updatedAt":   playlist.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlaylistRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
