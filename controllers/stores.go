package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongphuc2004/Music-Flow/models"
	"github.com/hongphuc2004/Music-Flow/platform/middleware"
	"github.com/hongphuc2004/Music-Flow/platform/storage"
)

// Store interfaces consumed by the controllers. The mongo implementations
// live in the repository package; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, avatar *string) (*models.User, error)
	AddFavorite(ctx context.Context, userID, songID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, songID primitive.ObjectID) error
	LinkPlaylist(ctx context.Context, userID, playlistID primitive.ObjectID) error
	UnlinkPlaylist(ctx context.Context, userID, playlistID primitive.ObjectID) error
}

type SongStore interface {
	Create(ctx context.Context, song *models.Song) error
	List(ctx context.Context) ([]models.Song, error)
	Search(ctx context.Context, query, artist, letter string) ([]models.Song, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Song, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Song, error)
	FindByTopic(ctx context.Context, topicID primitive.ObjectID) ([]models.Song, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByTopic(ctx context.Context, topicID primitive.ObjectID) (int64, error)
}

type TopicStore interface {
	Create(ctx context.Context, topic *models.Topic) error
	List(ctx context.Context) ([]models.Topic, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Topic, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description, imageURL, color *string) (*models.Topic, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PlaylistStore interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	Save(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MediaStore is the media relay boundary (MinIO in production).
type MediaStore interface {
	UploadFile(ctx context.Context, kind storage.Kind, folder, localPath string) (*storage.UploadResult, error)
	RemoveFile(ctx context.Context, kind storage.Kind, publicID string) error
}

// EventPublisher emits catalog change events. Failures are logged by callers,
// never surfaced to API clients.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// CatalogCache caches catalog listings. All failures are soft.
type CatalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// callerID returns the identity the auth middleware attached to the request.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
