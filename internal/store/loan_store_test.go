package store_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"library-catalog/internal/store"
)

func TestLoanStore_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid fields are rejected", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		cases := []struct {
			name       string
			memberName string
			isbn       string
			loanDate   string
		}{
			{"empty member name", "", "9780441013593", "2024-05-01"},
			{"bad loan date", "Jane Doe", "9780441013593", "2024"},
			{"short ISBN", "Jane Doe", "12345", "2024-05-01"},
		}

		for _, tc := range cases {
			_, err := s.Insert(context.Background(), tc.memberName, tc.isbn, tc.loanDate)
			if !store.IsValidationError(err) {
				t.Errorf("%s: Insert() error = %v, want validation error", tc.name, err)
			}
		}
	})

	mt.Run("ISBN already on loan", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "catalog.loans", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "ISBN", Value: "9780441013593"},
		}))

		_, err := s.Insert(context.Background(), "Jane Doe", "9780441013593", "2024-05-01")
		if !store.IsValidationError(err) {
			t.Errorf("Insert() error = %v, want validation error", err)
		}
	})

	mt.Run("unknown ISBN", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch),
		)

		_, err := s.Insert(context.Background(), "Jane Doe", "9780000000000", "2024-05-01")
		if !store.IsValidationError(err) {
			t.Errorf("Insert() error = %v, want validation error", err)
		}
	})

	mt.Run("member at loan cap", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch, bson.D{
				{Key: "id", Value: "b1"},
				{Key: "title", Value: "Dune"},
				{Key: "ISBN", Value: "9780441013593"},
			}),
			mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch, bson.D{
				{Key: "n", Value: 2},
			}),
		)

		_, err := s.Insert(context.Background(), "Jane Doe", "9780441013593", "2024-05-01")
		if !store.IsValidationError(err) {
			t.Errorf("Insert() error = %v, want validation error", err)
		}
	})

	mt.Run("successful insert", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch, bson.D{
				{Key: "id", Value: "b1"},
				{Key: "title", Value: "Dune"},
				{Key: "ISBN", Value: "9780441013593"},
			}),
			mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		id, err := s.Insert(context.Background(), "Jane Doe", "9780441013593", "2024-05-01")
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			t.Errorf("Insert() id = %q, not a valid object id", id)
		}
	})
}

func TestLoanStore_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id is an unknown id", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		_, err := s.GetByID(context.Background(), "not-an-object-id")
		if err != store.ErrNotFound {
			t.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("found", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "catalog.loans", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "memberName", Value: "Jane Doe"},
			{Key: "ISBN", Value: "9780441013593"},
			{Key: "title", Value: "Dune"},
			{Key: "loanDate", Value: "2024-05-01"},
		}))

		loan, err := s.GetByID(context.Background(), oid.Hex())
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if loan.MemberName != "Jane Doe" {
			t.Errorf("GetByID() memberName = %q, want Jane Doe", loan.MemberName)
		}
	})
}

func TestLoanStore_Query(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unrecognized field is rejected", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		_, err := s.Query(context.Background(), map[string]string{"overdue": "true"})
		if !store.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	mt.Run("malformed loanID is an unknown id", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		_, err := s.Query(context.Background(), map[string]string{"loanID": "short"})
		if err != store.ErrNotFound {
			t.Errorf("Query() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("filter by member name", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.loans", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "memberName", Value: "Jane Doe"},
			{Key: "ISBN", Value: "9780441013593"},
		}))

		loans, err := s.Query(context.Background(), map[string]string{"memberName": "Jane Doe"})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(loans) != 1 {
			t.Errorf("Query() returned %d loans, want 1", len(loans))
		}
	})
}

func TestLoanStore_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed id is an unknown id", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		err := s.Delete(context.Background(), "short")
		if err != store.ErrNotFound {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("unknown id", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.Delete(context.Background(), primitive.NewObjectID().Hex())
		if err != store.ErrNotFound {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("successful delete", func(mt *mtest.T) {
		s := store.NewLoanStore(mt.Coll, mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := s.Delete(context.Background(), primitive.NewObjectID().Hex()); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
	})
}
