package service

import (
	"context"
	"errors"
	"myflix_api/internal/common"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/domain/repository"
)

// MovieService serves the read-only catalog. Lookups by name that match
// nothing return nil and no error.
type MovieService struct {
	movieRepo repository.MovieRepository
}

func NewMovieService(movieRepo repository.MovieRepository) *MovieService {
	return &MovieService{movieRepo: movieRepo}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.movieRepo.FindAll(ctx)
}

func (s *MovieService) GetMovie(ctx context.Context, title string) (*model.Movie, error) {
	movie, err := s.movieRepo.FindByTitle(ctx, title)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return movie, err
}

func (s *MovieService) GetGenre(ctx context.Context, name string) (*model.Genre, error) {
	genre, err := s.movieRepo.FindGenre(ctx, name)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return genre, err
}

func (s *MovieService) GetDirector(ctx context.Context, name string) (*model.Director, error) {
	director, err := s.movieRepo.FindDirector(ctx, name)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return director, err
}
