package repository

import (
	"context"
	"errors"
	"fmt"
	"myflix_api/internal/common"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, username string, upd model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, username string) (*model.User, error)
	AddFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error)
	RemoveFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error)
}

type mongoUserRepository struct {
	coll *mongo.Collection
	// dedupeFavorites switches AddFavorite from $push to $addToSet.
	dedupeFavorites bool
}

func NewMongoUserRepository(db *mongo.Database, dedupeFavorites bool) UserRepository {
	return &mongoUserRepository{
		coll:            db.Collection(database.UsersCollection),
		dedupeFavorites: dedupeFavorites,
	}
}

func usernameFilter(username string) bson.M {
	return bson.M{"Username": username}
}

func profileUpdate(upd model.UserUpdate) bson.M {
	set := bson.M{
		"Username": upd.Username,
		"Password": upd.Password,
		"Email":    upd.Email,
	}
	if upd.Birthday != nil {
		set["Birthday"] = *upd.Birthday
	}
	return bson.M{"$set": set}
}

// favoriteAddUpdate appends movieID. Without dedupe the same ID may end up in
// the list more than once.
func favoriteAddUpdate(movieID primitive.ObjectID, dedupe bool) bson.M {
	if dedupe {
		return bson.M{"$addToSet": bson.M{"FavoriteMovies": movieID}}
	}
	return bson.M{"$push": bson.M{"FavoriteMovies": movieID}}
}

// favoriteRemoveUpdate removes every occurrence of movieID.
func favoriteRemoveUpdate(movieID primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{"FavoriteMovies": movieID}}
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindAll: %w", err)
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongoUserRepository.FindAll: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, usernameFilter(username)).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("mongoUserRepository.Create: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *mongoUserRepository) Update(ctx context.Context, username string, upd model.UserUpdate) (*model.User, error) {
	user, err := r.findOneAndUpdate(ctx, username, profileUpdate(upd))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return nil, wrapUnlessNotFound("mongoUserRepository.Update", err)
	}
	return user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOneAndDelete(ctx, usernameFilter(username)).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongoUserRepository.Delete: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) AddFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	user, err := r.findOneAndUpdate(ctx, username, favoriteAddUpdate(movieID, r.dedupeFavorites))
	if err != nil {
		return nil, wrapUnlessNotFound("mongoUserRepository.AddFavorite", err)
	}
	return user, nil
}

func (r *mongoUserRepository) RemoveFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	user, err := r.findOneAndUpdate(ctx, username, favoriteRemoveUpdate(movieID))
	if err != nil {
		return nil, wrapUnlessNotFound("mongoUserRepository.RemoveFavorite", err)
	}
	return user, nil
}

// findOneAndUpdate applies update to the user and returns the document as it
// is after the update.
func (r *mongoUserRepository) findOneAndUpdate(ctx context.Context, username string, update bson.M) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	user := &model.User{}
	err := r.coll.FindOneAndUpdate(ctx, usernameFilter(username), update, opts).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func wrapUnlessNotFound(op string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
