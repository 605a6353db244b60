package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors a document of the users collection. Password holds the bcrypt
// hash, never the plaintext.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username       string               `bson:"Username" json:"Username"`
	Password       string               `bson:"Password" json:"Password"`
	Email          string               `bson:"Email" json:"Email"`
	Birthday       *time.Time           `bson:"Birthday,omitempty" json:"Birthday,omitempty"`
	FavoriteMovies []primitive.ObjectID `bson:"FavoriteMovies" json:"FavoriteMovies"`
}

// UserUpdate is the set of fields replaced by a profile update.
type UserUpdate struct {
	Username string
	Password string
	Email    string
	Birthday *time.Time
}
