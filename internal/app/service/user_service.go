package service

import (
	"context"
	"errors"
	"fmt"
	"myflix_api/internal/common"
	"myflix_api/internal/common/security"
	"myflix_api/internal/common/validation"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo  repository.UserRepository
	hasher    *security.PasswordHasher
	validator *validation.Validator
}

func NewUserService(userRepo repository.UserRepository, hasher *security.PasswordHasher, v *validation.Validator) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher, validator: v}
}

// UserRequest is the body of signup and profile update.
type UserRequest struct {
	Username string `json:"Username" validate:"min=5,alphanum"`
	Password string `json:"Password" validate:"required"`
	Email    string `json:"Email" validate:"email"`
	Birthday string `json:"Birthday" validate:"omitempty,birthday"`
}

type movieRef struct {
	MovieID string `json:"MovieID" validate:"mongodb"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindAll(ctx)
}

// GetUser returns nil without error when no user has that username.
func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// CreateUser registers a new user. The password is hashed before it is
// stored and a taken username is rejected without touching the store.
func (s *UserService) CreateUser(ctx context.Context, req UserRequest) (*model.User, error) {
	fields, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, common.Errorf(common.ErrConflict, "%s already exists", req.Username)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &model.User{
		Username:       fields.Username,
		Password:       fields.Password,
		Email:          fields.Email,
		Birthday:       fields.Birthday,
		FavoriteMovies: []primitive.ObjectID{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.Errorf(common.ErrConflict, "%s already exists", req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUser replaces the profile of username, rehashing the password.
func (s *UserService) UpdateUser(ctx context.Context, username string, req UserRequest) (*model.User, error) {
	fields, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, username, fields)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return nil, common.Errorf(common.ErrNotFound, "%s was not found", username)
		case errors.Is(err, common.ErrConflict):
			return nil, common.Errorf(common.ErrConflict, "%s already exists", req.Username)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	if _, err := s.userRepo.Delete(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf(common.ErrNotFound, "%s was not found", username)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AddFavorite appends movieID to the user's favorites. Whether a repeated
// ID is stored twice is decided by the repository's dedupe policy.
func (s *UserService) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	id, err := s.parseMovieID(movieID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.AddFavorite(ctx, username, id)
	return s.favoriteResult(username, user, err)
}

// RemoveFavorite removes every occurrence of movieID. Removing an ID that is
// not in the list succeeds and leaves the list as it was.
func (s *UserService) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	id, err := s.parseMovieID(movieID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.RemoveFavorite(ctx, username, id)
	return s.favoriteResult(username, user, err)
}

func (s *UserService) favoriteResult(username string, user *model.User, err error) (*model.User, error) {
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf(common.ErrNotFound, "%s was not found", username)
		}
		return nil, fmt.Errorf("failed to update favorites: %w", err)
	}
	return user, nil
}

func (s *UserService) parseMovieID(movieID string) (primitive.ObjectID, error) {
	if err := s.validator.StructIn(movieRef{MovieID: movieID}, "params"); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(movieID)
}

// prepare validates req and turns it into stored field values.
func (s *UserService) prepare(req UserRequest) (model.UserUpdate, error) {
	if err := s.validator.Struct(req); err != nil {
		return model.UserUpdate{}, err
	}

	fields := model.UserUpdate{Username: req.Username, Email: req.Email}
	if req.Birthday != "" {
		bday, err := validation.ParseBirthday(req.Birthday)
		if err != nil {
			return model.UserUpdate{}, err
		}
		fields.Birthday = &bday
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return model.UserUpdate{}, validation.Errors{{Param: "Password", Msg: "Password is too long", Location: "body"}}
		}
		return model.UserUpdate{}, fmt.Errorf("failed to hash password: %w", err)
	}
	fields.Password = hash
	return fields, nil
}
