package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. The password field holds a bcrypt hash and is
// never serialized in responses.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"`
	Avatar        string               `bson:"avatar" json:"avatar"`
	FavoriteSongs []primitive.ObjectID `bson:"favoriteSongs" json:"favoriteSongs"`
	Playlists     []primitive.ObjectID `bson:"playlists" json:"playlists"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
