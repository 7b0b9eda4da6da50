package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hongphuc2004/Music-Flow/models"
)

type SongRepo struct {
	collection *mongo.Collection
}

func NewSongRepo(db *mongo.Database) *SongRepo {
	return &SongRepo{collection: db.Collection("songs")}
}

func (r *SongRepo) Create(ctx context.Context, song *models.Song) error {
	now := time.Now()
	song.CreatedAt = now
	song.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, song)
	if err != nil {
		return mapWriteErr(err)
	}
	song.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SongRepo) List(ctx context.Context) ([]models.Song, error) {
	return r.find(ctx, bson.M{})
}

func (r *SongRepo) Search(ctx context.Context, query, artist, letter string) ([]models.Song, error) {
	return r.find(ctx, SearchFilter(query, artist, letter))
}

func (r *SongRepo) FindByTopic(ctx context.Context, topicID primitive.ObjectID) ([]models.Song, error) {
	return r.find(ctx, bson.M{"topicId": topicID})
}

func (r *SongRepo) find(ctx context.Context, filter bson.M) ([]models.Song, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	songs := []models.Song{}
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *SongRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Song, error) {
	var song models.Song
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &song, nil
}

// FindByIDs resolves song references preserving the order of ids. Dangling
// references are silently skipped.
func (r *SongRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Song, error) {
	if len(ids) == 0 {
		return []models.Song{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var found []models.Song
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Song, len(found))
	for _, song := range found {
		byID[song.ID] = song
	}

	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := byID[id]; ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (r *SongRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SongRepo) CountByTopic(ctx context.Context, topicID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"topicId": topicID})
}

// SearchFilter builds the song search filter. All provided parameters combine
// with AND semantics: query is a case-insensitive substring match on title or
// artist, artist a substring match on artist, letter a prefix match on title.
func SearchFilter(query, artist, letter string) bson.M {
	var clauses []bson.M

	if query != "" {
		contains := containsPattern(query)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"title": contains},
			{"artist": contains},
		}})
	}
	if artist != "" {
		clauses = append(clauses, bson.M{"artist": containsPattern(artist)})
	}
	if letter != "" {
		clauses = append(clauses, bson.M{"title": prefixPattern(letter)})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func prefixPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s), Options: "i"}
}
