package repository

import (
	"context"
	"myflix_api/internal/common"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/platform/database"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// setupTestDatabase connects to MONGO_TEST_URI and returns a throwaway
// database that is dropped when the test ends.
func setupTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, uri, zap.NewNop())
	require.NoError(t, err)

	db := client.Database("myflix_test_" + primitive.NewObjectID().Hex())
	require.NoError(t, database.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		database.Close(context.Background(), client, zap.NewNop())
	})
	return db
}

func TestMongoUserRepository_Lifecycle(t *testing.T) {
	db := setupTestDatabase(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := NewMongoUserRepository(db, false)

	user := &model.User{Username: "validUser", Password: "hash", Email: "a@b.com"}
	require.NoError(t, repo.Create(ctx, user))
	assert.False(t, user.ID.IsZero())

	err := repo.Create(ctx, &model.User{Username: "validUser", Password: "hash", Email: "c@d.com"})
	assert.ErrorIs(t, err, common.ErrConflict)

	found, err := repo.FindByUsername(ctx, "validUser")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Empty(t, found.FavoriteMovies)

	movieID := primitive.NewObjectID()
	_, err = repo.AddFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	updated, err := repo.AddFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{movieID, movieID}, updated.FavoriteMovies)

	updated, err = repo.RemoveFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	assert.Empty(t, updated.FavoriteMovies)

	updated, err = repo.RemoveFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	assert.Empty(t, updated.FavoriteMovies)

	updated, err = repo.Update(ctx, "validUser", model.UserUpdate{Username: "renamedUser", Password: "hash2", Email: "e@f.com"})
	require.NoError(t, err)
	assert.Equal(t, "renamedUser", updated.Username)

	_, err = repo.Update(ctx, "validUser", model.UserUpdate{Username: "x", Password: "y", Email: "z"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Delete(ctx, "renamedUser")
	require.NoError(t, err)
	_, err = repo.Delete(ctx, "renamedUser")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMongoUserRepository_DedupePolicy(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	repo := NewMongoUserRepository(db, true)
	require.NoError(t, repo.Create(ctx, &model.User{Username: "validUser", Password: "hash", Email: "a@b.com"}))

	movieID := primitive.NewObjectID()
	_, err := repo.AddFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	updated, err := repo.AddFavorite(ctx, "validUser", movieID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{movieID}, updated.FavoriteMovies)
}

func TestMongoMovieRepository_Lookups(t *testing.T) {
	db := setupTestDatabase(t)
	ctx := context.Background()

	_, err := db.Collection(database.MoviesCollection).InsertOne(ctx, model.Movie{
		Title:       "Inception",
		Description: "Dreams within dreams.",
		Genre:       model.Genre{Name: "Sci-Fi", Description: "Speculative fiction."},
		Director:    model.Director{Name: "Christopher Nolan", Bio: "British-American filmmaker.", Birth: "1970"},
		Featured:    true,
	})
	require.NoError(t, err)

	repo := NewMongoMovieRepository(db)

	movies, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	movie, err := repo.FindByTitle(ctx, "Inception")
	require.NoError(t, err)
	assert.True(t, movie.Featured)

	_, err = repo.FindByTitle(ctx, "Tenet")
	assert.ErrorIs(t, err, common.ErrNotFound)

	genre, err := repo.FindGenre(ctx, "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, "Speculative fiction.", genre.Description)

	director, err := repo.FindDirector(ctx, "Christopher Nolan")
	require.NoError(t, err)
	assert.Equal(t, model.DateText("1970"), director.Birth)

	_, err = repo.FindDirector(ctx, "Nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
