package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"library-catalog/internal/enrichment"
	"library-catalog/internal/models"
)

// Enricher supplies external metadata for new book records. Failures are
// degraded to placeholder values by the store, never propagated.
type Enricher interface {
	Metadata(ctx context.Context, isbn string) (enrichment.Metadata, error)
	Language(ctx context.Context, isbn string) ([]string, error)
	Summarize(ctx context.Context, title, authors string) string
}

// BookStore owns the books collection and the rating aggregates that live
// and die with each book. Mutating operations are serialized by a single
// mutex so the ISBN-uniqueness check and the insert cannot interleave.
type BookStore struct {
	Books    *mongo.Collection
	Ratings  *mongo.Collection
	Enricher Enricher

	mu sync.Mutex
}

func NewBookStore(books, ratings *mongo.Collection, enricher Enricher) *BookStore {
	return &BookStore{
		Books:    books,
		Ratings:  ratings,
		Enricher: enricher,
	}
}

// Insert validates the supplied fields, enriches the record from the
// external providers and creates the book together with its empty rating
// aggregate. It returns the generated book id.
func (s *BookStore) Insert(ctx context.Context, title, isbn, genre string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.IsValidGenre(genre) {
		return "", NewValidationError("genre is not one of the accepted values")
	}
	if !models.IsValidTitle(title) {
		return "", NewValidationError("title must be a non-empty string")
	}
	if len(isbn) != models.ISBNLength {
		return "", NewValidationError("ISBN must be exactly 13 characters")
	}

	err := s.Books.FindOne(ctx, bson.M{"ISBN": isbn}).Err()
	if err == nil {
		return "", NewValidationError("a book with this ISBN already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	book := s.enrich(ctx, models.Book{
		ID:    uuid.NewString(),
		Title: title,
		ISBN:  isbn,
		Genre: genre,
	})

	if _, err := s.Books.InsertOne(ctx, book); err != nil {
		return "", err
	}

	rating := models.Rating{
		ID:      book.ID,
		Title:   title,
		Values:  []int{},
		Average: 0,
	}
	if _, err := s.Ratings.InsertOne(ctx, rating); err != nil {
		return "", err
	}

	return book.ID, nil
}

// enrich fills authors, publisher, publish date, language and summary from
// the external providers, substituting "missing" for anything a provider
// cannot supply.
func (s *BookStore) enrich(ctx context.Context, book models.Book) models.Book {
	book.Authors = models.FieldMissing
	book.Publisher = models.FieldMissing
	book.PublishedDate = models.FieldMissing
	book.Language = []string{models.FieldMissing}

	if meta, err := s.Enricher.Metadata(ctx, book.ISBN); err == nil {
		if len(meta.Authors) > 0 {
			book.Authors = strings.Join(meta.Authors, " and ")
		}
		if meta.Publisher != "" {
			book.Publisher = meta.Publisher
		}
		if models.IsValidPublishDate(meta.PublishedDate) {
			book.PublishedDate = meta.PublishedDate
		}
	}

	if langs, err := s.Enricher.Language(ctx, book.ISBN); err == nil && len(langs) > 0 {
		book.Language = langs
	}

	book.Summary = s.Enricher.Summarize(ctx, book.Title, book.Authors)
	return book
}

func (s *BookStore) GetByID(ctx context.Context, id string) (models.Book, error) {
	var book models.Book
	err := s.Books.FindOne(ctx, bson.M{"id": id}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// Query filters books by exact field equality; the language field matches by
// containment (any of the stored language codes). An empty query returns all
// books; a query that matches nothing is an empty success, not an error.
func (s *BookStore) Query(ctx context.Context, params map[string]string) ([]models.Book, error) {
	filter := bson.M{}
	for field, value := range params {
		if !models.IsBookField(field) {
			return nil, NewValidationError(fmt.Sprintf("%s is not a recognized field", field))
		}
		if field == "genre" && !models.IsValidGenre(value) {
			return nil, NewValidationError("genre is not one of the accepted values")
		}
		filter[field] = value
	}

	cursor, err := s.Books.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Update overwrites the supplied fields in place. Only genre is validated;
// the other fields are deliberately left unchecked here, matching insert-time
// validation being the only gate.
func (s *BookStore) Update(ctx context.Context, id string, patch models.BookPatch) error {
	if patch.Genre != nil && !models.IsValidGenre(*patch.Genre) {
		return NewValidationError("genre is not one of the accepted values")
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Authors != nil {
		set["authors"] = *patch.Authors
	}
	if patch.ISBN != nil {
		set["ISBN"] = *patch.ISBN
	}
	if patch.Publisher != nil {
		set["publisher"] = *patch.Publisher
	}
	if patch.PublishedDate != nil {
		set["publishedDate"] = *patch.PublishedDate
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}
	if patch.Language != nil {
		set["language"] = *patch.Language
	}
	if patch.Summary != nil {
		set["summary"] = *patch.Summary
	}
	if len(set) == 0 {
		return NewValidationError("no update fields provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Books.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the book and cascades to its rating aggregate.
func (s *BookStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Books.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	_, err = s.Ratings.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// SearchByField returns every book whose field equals value; for list-valued
// fields the match is by membership. An unknown field yields an empty result.
func (s *BookStore) SearchByField(ctx context.Context, field, value string) ([]models.Book, error) {
	if !models.IsBookField(field) {
		return []models.Book{}, nil
	}

	cursor, err := s.Books.Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}
