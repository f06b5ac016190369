package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"library-catalog/internal/enrichment"
	"library-catalog/internal/handlers"
	"library-catalog/internal/middleware"
	"library-catalog/internal/store"
	"library-catalog/internal/utils"
)

type unavailableEnricher struct{}

func (unavailableEnricher) Metadata(ctx context.Context, isbn string) (enrichment.Metadata, error) {
	return enrichment.Metadata{}, enrichment.ErrUnavailable
}

func (unavailableEnricher) Language(ctx context.Context, isbn string) ([]string, error) {
	return nil, enrichment.ErrUnavailable
}

func (unavailableEnricher) Summarize(ctx context.Context, title, authors string) string {
	return enrichment.SummaryUnavailable
}

func newBookRouter(mt *mtest.T) *mux.Router {
	bookStore := store.NewBookStore(mt.Coll, mt.Coll, unavailableEnricher{})
	handler := handlers.NewBookHandler(bookStore, utils.Logger{Collection: mt.Coll})

	router := mux.NewRouter()
	router.Use(middleware.JSONMiddleware)
	router.HandleFunc("/books", handler.CreateBook).Methods("POST")
	router.HandleFunc("/books", handler.GetBooks).Methods("GET")
	router.HandleFunc("/books/{id}", handler.GetBook).Methods("GET")
	router.HandleFunc("/books/{id}", handler.UpdateBook).Methods("PUT")
	router.HandleFunc("/books/{id}", handler.DeleteBook).Methods("DELETE")
	return router
}

func postJSON(router *mux.Router, path string, body any) *httptest.ResponseRecorder {
	reqBytes, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(reqBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookHandler_CreateBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non-JSON content type", func(mt *mtest.T) {
		router := newBookRouter(mt)

		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewReader([]byte("title=Dune")))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnsupportedMediaType {
			t.Errorf("expected status UnsupportedMediaType, got %v", w.Code)
		}
	})

	mt.Run("invalid genre", func(mt *mtest.T) {
		router := newBookRouter(mt)

		w := postJSON(router, "/books", map[string]string{
			"title": "Dune",
			"ISBN":  "9780441013593",
			"genre": "Space Opera",
		})

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected status UnprocessableEntity, got %v", w.Code)
		}
	})

	mt.Run("successful creation", func(mt *mtest.T) {
		router := newBookRouter(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		w := postJSON(router, "/books", map[string]string{
			"title": "Dune",
			"ISBN":  "9780441013593",
			"genre": "Science Fiction",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status Created, got %v: %s", w.Code, w.Body.String())
		}

		var resp map[string]string
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["ID"] == "" {
			t.Error("expected a generated book ID in the response")
		}
	})
}

func TestBookHandler_GetBooks(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unrecognized query field", func(mt *mtest.T) {
		router := newBookRouter(mt)

		req := httptest.NewRequest(http.MethodGet, "/books?shelf=A3", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected status UnprocessableEntity, got %v", w.Code)
		}
	})

	mt.Run("genre filter", func(mt *mtest.T) {
		router := newBookRouter(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "b1"},
			{Key: "title", Value: "Dune"},
			{Key: "genre", Value: "Science Fiction"},
		}))

		req := httptest.NewRequest(http.MethodGet, "/books?genre=Science+Fiction", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}
	})
}

func TestBookHandler_GetBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		router := newBookRouter(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "catalog.books", mtest.FirstBatch))

		req := httptest.NewRequest(http.MethodGet, "/books/nope", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", w.Code)
		}
	})

	mt.Run("found", func(mt *mtest.T) {
		router := newBookRouter(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "catalog.books", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "b1"},
			{Key: "title", Value: "Dune"},
		}))

		req := httptest.NewRequest(http.MethodGet, "/books/b1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", w.Code)
		}
	})
}

func TestBookHandler_UpdateBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid genre", func(mt *mtest.T) {
		router := newBookRouter(mt)

		reqBytes, _ := json.Marshal(map[string]string{"genre": "Space Opera"})
		req := httptest.NewRequest(http.MethodPut, "/books/b1", bytes.NewReader(reqBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected status UnprocessableEntity, got %v", w.Code)
		}
	})
}

func TestBookHandler_DeleteBook(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		router := newBookRouter(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req := httptest.NewRequest(http.MethodDelete, "/books/nope", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status NotFound, got %v", w.Code)
		}
	})
}
