package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is a named, owned, ordered collection of song references. UserID is
// the owner and is never reassigned after creation. The songs sequence holds
// each song at most once.
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Songs       []primitive.ObjectID `bson:"songs" json:"songs"`
	CoverImage  string               `bson:"coverImage" json:"coverImage"`
	IsPublic    bool                 `bson:"isPublic" json:"isPublic"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy is the single authorization predicate for every playlist mutation.
func (p *Playlist) OwnedBy(userID primitive.ObjectID) bool {
	return p.UserID == userID
}

// CanBeReadBy allows reads by the owner always, and by anyone else only while
// the playlist is public.
func (p *Playlist) CanBeReadBy(userID primitive.ObjectID) bool {
	return p.IsPublic || p.OwnedBy(userID)
}

// HasSong reports whether songID is already part of the sequence.
func (p *Playlist) HasSong(songID primitive.ObjectID) bool {
	for _, id := range p.Songs {
		if id == songID {
			return true
		}
	}
	return false
}

// AddSong appends songID to the end of the sequence. It refuses duplicates and
// reports whether the sequence changed.
func (p *Playlist) AddSong(songID primitive.ObjectID) bool {
	if p.HasSong(songID) {
		return false
	}
	p.Songs = append(p.Songs, songID)
	return true
}

// RemoveSong drops every occurrence of songID. Removing an absent id is a
// no-op, not an error.
func (p *Playlist) RemoveSong(songID primitive.ObjectID) {
	kept := p.Songs[:0]
	for _, id := range p.Songs {
		if id != songID {
			kept = append(kept, id)
		}
	}
	p.Songs = kept
}

// Reorder replaces the stored sequence verbatim with the given one.
func (p *Playlist) Reorder(songIDs []primitive.ObjectID) {
	p.Songs = append([]primitive.ObjectID(nil), songIDs...)
}

// SongCount is derived, never stored.
func (p *Playlist) SongCount() int {
	return len(p.Songs)
}
