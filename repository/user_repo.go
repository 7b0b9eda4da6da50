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

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{collection: db.Collection("users")}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteSongs == nil {
		user.FavoriteSongs = []primitive.ObjectID{}
	}
	if user.Playlists == nil {
		user.Playlists = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return mapWriteErr(err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &user, nil
}

// UpdateProfile applies only the fields that are present in the request.
func (r *UserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, avatar *string) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if name != nil {
		set["name"] = *name
	}
	if avatar != nil {
		set["avatar"] = *avatar
	}

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &user, nil
}

// AddFavorite uses $addToSet so favorites keep set semantics even under
// repeated requests.
func (r *UserRepo) AddFavorite(ctx context.Context, userID, songID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"favoriteSongs": songID}})
}

func (r *UserRepo) RemoveFavorite(ctx context.Context, userID, songID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"favoriteSongs": songID}})
}

func (r *UserRepo) LinkPlaylist(ctx context.Context, userID, playlistID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$push": bson.M{"playlists": playlistID}})
}

func (r *UserRepo) UnlinkPlaylist(ctx context.Context, userID, playlistID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"playlists": playlistID}})
}

func (r *UserRepo) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
