package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

const collectionMovies = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

type movieDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	MovieID     string             `bson:"movieId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ReleaseDate time.Time          `bson:"releaseDate"`
	Genre       []string           `bson:"genre"`
	Director    string             `bson:"director"`
	Cast        []string           `bson:"cast"`
	Rating      float64            `bson:"rating"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *movieDocument) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          d.ID.Hex(),
		MovieID:     d.MovieID,
		Title:       d.Title,
		Description: d.Description,
		ReleaseDate: d.ReleaseDate.UTC(),
		Genre:       d.Genre,
		Director:    d.Director,
		Cast:        d.Cast,
		Rating:      d.Rating,
		CreatedBy:   d.CreatedBy.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// Create inserts a new movie document. createdBy must be a user ObjectID.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	owner, err := toObjectID(m.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("create movie: owner: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := movieDocument{
		ID:          primitive.NewObjectID(),
		MovieID:     m.MovieID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Genre:       m.Genre,
		Director:    m.Director,
		Cast:        m.Cast,
		Rating:      m.Rating,
		CreatedBy:   owner,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMovieExists
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a movie by its surrogate id.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, domain.ErrMovieNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByMovieID retrieves a movie by its business id.
func (r *MovieRepository) FindByMovieID(ctx context.Context, movieID string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"movieId": movieID})
}

func (r *MovieRepository) findOne(ctx context.Context, filter bson.M) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d movieDocument
	err := r.col.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return d.toDomain(), nil
}

// List returns movies newest first. When filter.CreatedBy is set only that
// user's movies are returned.
func (r *MovieRepository) List(ctx context.Context, filter ports.MovieFilter) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CreatedBy != "" {
		owner, err := toObjectID(filter.CreatedBy)
		if err != nil {
			return []*domain.Movie{}, nil
		}
		query["createdBy"] = owner
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	movies := make([]*domain.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, docs[i].toDomain())
	}
	return movies, nil
}

// Update sets every mutable field of the movie. createdBy and createdAt are
// never written here.
func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) error {
	oid, err := toObjectID(m.ID)
	if err != nil {
		return domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"movieId":     m.MovieID,
		"title":       m.Title,
		"description": m.Description,
		"releaseDate": m.ReleaseDate,
		"genre":       m.Genre,
		"director":    m.Director,
		"cast":        m.Cast,
		"rating":      m.Rating,
		"updatedAt":   m.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrMovieExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the movies collection.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "movieId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
