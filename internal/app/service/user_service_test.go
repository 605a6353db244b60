package service

import (
	"context"
	"errors"
	"myflix_api/internal/common"
	"myflix_api/internal/common/security"
	"myflix_api/internal/common/validation"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(repo *testutil.UserRepository) *UserService {
	return NewUserService(repo, security.NewPasswordHasher(bcrypt.MinCost), validation.New())
}

func validRequest() UserRequest {
	return UserRequest{Username: "validUser", Password: "secret1", Email: "a@b.com"}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := testutil.NewUserRepository()
	svc := newUserService(repo)

	user, err := svc.CreateUser(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "validUser", user.Username)
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, security.CheckPasswordHash("secret1", user.Password))
	assert.False(t, user.ID.IsZero())
	assert.NotNil(t, user.FavoriteMovies)

	stored, err := repo.FindByUsername(context.Background(), "validUser")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
}

func TestCreateUser_WithBirthday(t *testing.T) {
	svc := newUserService(testutil.NewUserRepository())

	req := validRequest()
	req.Birthday = "1990-04-01"
	user, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, user.Birthday)
	assert.Equal(t, 1990, user.Birthday.Year())
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser", Password: "old", Email: "old@b.com"})
	svc := newUserService(repo)

	_, err := svc.CreateUser(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.EqualError(t, err, "validUser already exists")

	all, _ := repo.FindAll(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, "old", all[0].Password, "existing user must be untouched")
}

func TestCreateUser_ValidationFailureTouchesNothing(t *testing.T) {
	repo := testutil.NewUserRepository()
	svc := newUserService(repo)

	_, err := svc.CreateUser(context.Background(), UserRequest{Username: "ab", Email: "bad"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Zero(t, repo.Calls)
}

func TestCreateUser_StorageFailure(t *testing.T) {
	repo := testutil.NewUserRepository()
	repo.Err = errors.New("connection refused")
	svc := newUserService(repo)

	_, err := svc.CreateUser(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, 500, common.HTTPStatusFromError(err))
}

func TestGetUser_Missing(t *testing.T) {
	svc := newUserService(testutil.NewUserRepository())

	user, err := svc.GetUser(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateUser(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser", Password: "old", Email: "old@b.com"})
	svc := newUserService(repo)

	req := UserRequest{Username: "renamedUser", Password: "newpass", Email: "new@b.com"}
	user, err := svc.UpdateUser(context.Background(), "validUser", req)
	require.NoError(t, err)
	assert.Equal(t, "renamedUser", user.Username)
	assert.Equal(t, "new@b.com", user.Email)
	assert.True(t, security.CheckPasswordHash("newpass", user.Password))
}

func TestUpdateUser_Errors(t *testing.T) {
	repo := testutil.NewUserRepository(
		model.User{Username: "validUser"},
		model.User{Username: "takenName"},
	)
	svc := newUserService(repo)

	_, err := svc.UpdateUser(context.Background(), "missingUser", validRequest())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.EqualError(t, err, "missingUser was not found")

	req := validRequest()
	req.Username = "takenName"
	_, err = svc.UpdateUser(context.Background(), "validUser", req)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.UpdateUser(context.Background(), "validUser", UserRequest{Username: "validUser", Password: "", Email: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser"})
	svc := newUserService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), "validUser"))

	err := svc.DeleteUser(context.Background(), "validUser")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.EqualError(t, err, "validUser was not found")
}

func TestFavorites_AddIsNotIdempotent(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser"})
	svc := newUserService(repo)
	movieID := primitive.NewObjectID()

	_, err := svc.AddFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)
	user, err := svc.AddFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{movieID, movieID}, user.FavoriteMovies)
}

func TestFavorites_DedupePolicy(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser"})
	repo.DedupeFavorites = true
	svc := newUserService(repo)
	movieID := primitive.NewObjectID()

	_, err := svc.AddFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)
	user, err := svc.AddFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{movieID}, user.FavoriteMovies)
}

func TestFavorites_RemoveAllOccurrencesAndIdempotent(t *testing.T) {
	movieID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	repo := testutil.NewUserRepository(model.User{
		Username:       "validUser",
		FavoriteMovies: []primitive.ObjectID{movieID, other, movieID},
	})
	svc := newUserService(repo)

	user, err := svc.RemoveFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{other}, user.FavoriteMovies)

	user, err = svc.RemoveFavorite(context.Background(), "validUser", movieID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{other}, user.FavoriteMovies)
}

func TestFavorites_InvalidMovieID(t *testing.T) {
	repo := testutil.NewUserRepository(model.User{Username: "validUser"})
	svc := newUserService(repo)

	_, err := svc.AddFavorite(context.Background(), "validUser", "not-an-id")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, repo.Calls)
}

func TestFavorites_UnknownUser(t *testing.T) {
	svc := newUserService(testutil.NewUserRepository())

	_, err := svc.AddFavorite(context.Background(), "nobody", primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.EqualError(t, err, "nobody was not found")
}
