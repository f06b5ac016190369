package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"library-catalog/internal/models"
)

// LoanStore owns loan records. It references books by ISBN but never mutates
// them; a loan stays outstanding until it is deleted, there is no return
// operation.
type LoanStore struct {
	Loans *mongo.Collection
	Books *mongo.Collection

	mu sync.Mutex
}

func NewLoanStore(loans, books *mongo.Collection) *LoanStore {
	return &LoanStore{Loans: loans, Books: books}
}

// Insert validates the loan request and creates the record. An ISBN may back
// at most one outstanding loan, and a member may hold at most two.
func (s *LoanStore) Insert(ctx context.Context, memberName, isbn, loanDate string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.IsValidMemberName(memberName) ||
		!models.IsValidLoanDate(loanDate) ||
		len(isbn) != models.ISBNLength {
		return "", NewValidationError("one of the inserted fields is not valid")
	}

	err := s.Loans.FindOne(ctx, bson.M{"ISBN": isbn}).Err()
	if err == nil {
		return "", NewValidationError(fmt.Sprintf("the book with ISBN %s is already on loan", isbn))
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	var book models.Book
	err = s.Books.FindOne(ctx, bson.M{"ISBN": isbn}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", NewValidationError(fmt.Sprintf("no book with ISBN %s exists", isbn))
	}
	if err != nil {
		return "", err
	}

	count, err := s.Loans.CountDocuments(ctx, bson.M{"memberName": memberName})
	if err != nil {
		return "", err
	}
	if count >= models.MaxLoansPerMember {
		return "", NewValidationError(fmt.Sprintf(
			"member %s has %d loaned books and cannot loan another one",
			memberName, models.MaxLoansPerMember))
	}

	loan := models.Loan{
		ID:         primitive.NewObjectID(),
		MemberName: memberName,
		ISBN:       isbn,
		Title:      book.Title,
		BookID:     book.ID,
		LoanDate:   loanDate,
	}
	if _, err := s.Loans.InsertOne(ctx, loan); err != nil {
		return "", err
	}

	return loan.ID.Hex(), nil
}

func (s *LoanStore) GetByID(ctx context.Context, id string) (models.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Loan{}, ErrNotFound
	}

	var loan models.Loan
	err = s.Loans.FindOne(ctx, bson.M{"_id": oid}).Decode(&loan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Loan{}, ErrNotFound
	}
	if err != nil {
		return models.Loan{}, err
	}
	return loan, nil
}

// Query filters loans by exact field equality. loanID is an accepted alias
// for the identity field; a malformed id is treated as an unknown one.
func (s *LoanStore) Query(ctx context.Context, params map[string]string) ([]models.Loan, error) {
	filter := bson.M{}
	for field, value := range params {
		if field == "loanID" || field == "_id" {
			oid, err := primitive.ObjectIDFromHex(value)
			if err != nil {
				return nil, ErrNotFound
			}
			filter["_id"] = oid
			continue
		}
		if !models.IsLoanField(field) {
			return nil, NewValidationError(fmt.Sprintf("%s is not a recognized field", field))
		}
		filter[field] = value
	}

	cursor, err := s.Loans.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	loans := []models.Loan{}
	if err := cursor.All(ctx, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// Delete removes the loan, making its ISBN loanable again.
func (s *LoanStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Loans.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
