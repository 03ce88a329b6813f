package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

const moviesCollection = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(moviesCollection)}
}

type mongoMovie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Author        string             `bson:"author"`
	Genre         string             `bson:"genre"`
	DateOfRelease time.Time          `bson:"date_of_release"`
	UserID        string             `bson:"user_id"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mm *mongoMovie) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:            mm.ID.Hex(),
		Title:         mm.Title,
		Description:   mm.Description,
		Author:        mm.Author,
		Genre:         domain.Genre(mm.Genre),
		DateOfRelease: mm.DateOfRelease.UTC(),
		UserID:        mm.UserID,
		CreatedAt:     mm.CreatedAt.UTC(),
		UpdatedAt:     mm.UpdatedAt.UTC(),
	}
}

func movieDoc(m *domain.Movie) mongoMovie {
	return mongoMovie{
		Title:         m.Title,
		Description:   m.Description,
		Author:        m.Author,
		Genre:         string(m.Genre),
		DateOfRelease: m.DateOfRelease,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// searchFilter matches query as a literal, case-insensitive substring of any
// searchable field.
func searchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"author": pattern},
		bson.M{"genre": pattern},
	}}
}

// EnsureIndexes creates necessary indexes on the movies collection.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("movies indexes: %w", err)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	return r.find(ctx, bson.M{})
}

func (r *MovieRepository) Search(ctx context.Context, query string) ([]*domain.Movie, error) {
	return r.find(ctx, searchFilter(query))
}

func (r *MovieRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Movie, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MovieRepository) find(ctx context.Context, filter bson.M) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []mongoMovie
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	movies := make([]*domain.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, docs[i].toDomain())
	}
	return movies, nil
}

// FindByID retrieves a movie by its hex id.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMovie
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return mm.toDomain(), nil
}

// Create inserts a new movie document.
func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := movieDoc(m)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update replaces the editable fields. Ownership and creation time are left untouched.
func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	oid, ok := objectID(m.ID)
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMovie
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":           m.Title,
			"description":     m.Description,
			"author":          m.Author,
			"genre":           string(m.Genre),
			"date_of_release": m.DateOfRelease,
			"updated_at":      m.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mm)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return mm.toDomain(), nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
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

// DeleteByOwner removes every movie owned by userID and reports how many went.
func (r *MovieRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
