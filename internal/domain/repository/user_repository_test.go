package repository

import (
	"myflix_api/internal/domain/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFavoriteAddUpdate(t *testing.T) {
	id := primitive.NewObjectID()

	assert.Equal(t,
		bson.M{"$push": bson.M{"FavoriteMovies": id}},
		favoriteAddUpdate(id, false),
		"default policy appends without deduplication")
	assert.Equal(t,
		bson.M{"$addToSet": bson.M{"FavoriteMovies": id}},
		favoriteAddUpdate(id, true))
}

func TestFavoriteRemoveUpdate(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"$pull": bson.M{"FavoriteMovies": id}}, favoriteRemoveUpdate(id))
}

func TestProfileUpdate(t *testing.T) {
	upd := profileUpdate(model.UserUpdate{Username: "newName1", Password: "hash", Email: "a@b.com"})
	assert.Equal(t, bson.M{"$set": bson.M{
		"Username": "newName1",
		"Password": "hash",
		"Email":    "a@b.com",
	}}, upd)

	bday := time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)
	upd = profileUpdate(model.UserUpdate{Username: "newName1", Password: "hash", Email: "a@b.com", Birthday: &bday})
	assert.Equal(t, bday, upd["$set"].(bson.M)["Birthday"])
}

func TestUsernameFilter(t *testing.T) {
	assert.Equal(t, bson.M{"Username": "validUser"}, usernameFilter("validUser"))
}
