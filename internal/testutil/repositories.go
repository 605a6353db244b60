// Package testutil holds in-memory stand-ins for the Mongo repositories.
package testutil

import (
	"context"
	"myflix_api/internal/common"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/domain/repository"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repository.UserRepository  = (*UserRepository)(nil)
	_ repository.MovieRepository = (*MovieRepository)(nil)
)

// UserRepository is an in-memory repository.UserRepository. Calls counts
// every method invocation; Err, when set, is returned by every method.
type UserRepository struct {
	mu              sync.Mutex
	users           []model.User
	DedupeFavorites bool
	Err             error
	Calls           int
}

func NewUserRepository(users ...model.User) *UserRepository {
	return &UserRepository{users: users}
}

func (r *UserRepository) begin() error {
	r.mu.Lock()
	r.Calls++
	return r.Err
}

func (r *UserRepository) index(username string) int {
	for i := range r.users {
		if r.users[i].Username == username {
			return i
		}
	}
	return -1
}

func copyUser(u model.User) *model.User {
	u.FavoriteMovies = append([]primitive.ObjectID{}, u.FavoriteMovies...)
	return &u
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *copyUser(u))
	}
	return out, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	i := r.index(username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	return copyUser(r.users[i]), nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return err
	}
	if r.index(user.Username) >= 0 {
		return common.ErrConflict
	}
	user.ID = primitive.NewObjectID()
	r.users = append(r.users, *copyUser(*user))
	return nil
}

func (r *UserRepository) Update(ctx context.Context, username string, upd model.UserUpdate) (*model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	i := r.index(username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	if j := r.index(upd.Username); j >= 0 && j != i {
		return nil, common.ErrConflict
	}
	u := &r.users[i]
	u.Username, u.Password, u.Email = upd.Username, upd.Password, upd.Email
	if upd.Birthday != nil {
		u.Birthday = upd.Birthday
	}
	return copyUser(*u), nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) (*model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	i := r.index(username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	removed := r.users[i]
	r.users = append(r.users[:i], r.users[i+1:]...)
	return copyUser(removed), nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	i := r.index(username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	u := &r.users[i]
	if r.DedupeFavorites {
		for _, id := range u.FavoriteMovies {
			if id == movieID {
				return copyUser(*u), nil
			}
		}
	}
	u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	return copyUser(*u), nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, username string, movieID primitive.ObjectID) (*model.User, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	i := r.index(username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	u := &r.users[i]
	kept := u.FavoriteMovies[:0]
	for _, id := range u.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	u.FavoriteMovies = kept
	return copyUser(*u), nil
}

// MovieRepository is an in-memory repository.MovieRepository.
type MovieRepository struct {
	mu     sync.Mutex
	movies []model.Movie
	Err    error
	Calls  int
}

func NewMovieRepository(movies ...model.Movie) *MovieRepository {
	return &MovieRepository{movies: movies}
}

func (r *MovieRepository) begin() error {
	r.mu.Lock()
	r.Calls++
	return r.Err
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]model.Movie, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	return append([]model.Movie{}, r.movies...), nil
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	for _, m := range r.movies {
		if m.Title == title {
			return &m, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MovieRepository) FindGenre(ctx context.Context, name string) (*model.Genre, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	for _, m := range r.movies {
		if m.Genre.Name == name {
			return &m.Genre, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MovieRepository) FindDirector(ctx context.Context, name string) (*model.Director, error) {
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	for _, m := range r.movies {
		if m.Director.Name == name {
			return &m.Director, nil
		}
	}
	return nil, common.ErrNotFound
}
