package repository

import (
	"context"
	"errors"
	"fmt"
	"myflix_api/internal/common"
	"myflix_api/internal/domain/model"
	"myflix_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MovieRepository is read-only; the catalog is maintained outside this
// service.
type MovieRepository interface {
	FindAll(ctx context.Context) ([]model.Movie, error)
	FindByTitle(ctx context.Context, title string) (*model.Movie, error)
	FindGenre(ctx context.Context, name string) (*model.Genre, error)
	FindDirector(ctx context.Context, name string) (*model.Director, error)
}

type mongoMovieRepository struct {
	coll *mongo.Collection
}

func NewMongoMovieRepository(db *mongo.Database) MovieRepository {
	return &mongoMovieRepository{coll: db.Collection(database.MoviesCollection)}
}

func (r *mongoMovieRepository) FindAll(ctx context.Context) ([]model.Movie, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindAll: %w", err)
	}
	movies := []model.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindAll: %w", err)
	}
	return movies, nil
}

func (r *mongoMovieRepository) FindByTitle(ctx context.Context, title string) (*model.Movie, error) {
	movie := &model.Movie{}
	if err := r.findOne(ctx, bson.M{"Title": title}, nil, movie); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindByTitle: %w", err)
	}
	return movie, nil
}

// FindGenre returns the Genre sub-document of the first movie filed under
// name.
func (r *mongoMovieRepository) FindGenre(ctx context.Context, name string) (*model.Genre, error) {
	var movie model.Movie
	if err := r.findOne(ctx, bson.M{"Genre.Name": name}, bson.M{"Genre": 1}, &movie); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindGenre: %w", err)
	}
	return &movie.Genre, nil
}

func (r *mongoMovieRepository) FindDirector(ctx context.Context, name string) (*model.Director, error) {
	var movie model.Movie
	if err := r.findOne(ctx, bson.M{"Director.Name": name}, bson.M{"Director": 1}, &movie); err != nil {
		return nil, fmt.Errorf("mongoMovieRepository.FindDirector: %w", err)
	}
	return &movie.Director, nil
}

func (r *mongoMovieRepository) findOne(ctx context.Context, filter, projection bson.M, out interface{}) error {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	err := r.coll.FindOne(ctx, filter, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrNotFound
	}
	return err
}
