package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Song is a catalog-wide document; songs are not owned by users. The public id
// fields are opaque handles used to delete the stored media assets later.
type Song struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Artist        string             `bson:"artist" json:"artist"`
	TopicID       primitive.ObjectID `bson:"topicId" json:"topicId"`
	AudioURL      string             `bson:"audioUrl" json:"audioUrl"`
	AudioPublicID string             `bson:"audioPublicId" json:"audioPublicId"`
	Duration      float64            `bson:"duration" json:"duration"`
	ImageURL      string             `bson:"imageUrl" json:"imageUrl"`
	ImagePublicID string             `bson:"imagePublicId" json:"imagePublicId"`
	Lyrics        string             `bson:"lyrics" json:"lyrics"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
