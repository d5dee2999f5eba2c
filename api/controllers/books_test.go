package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	booksvc "github.com/manuslibros/libros-backend/internal/books"
	"github.com/manuslibros/libros-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

type stubBookService struct {
	created *booksvc.CreateBookInput
	deleted bool
}

func (s *stubBookService) Create(ctx context.Context, input booksvc.CreateBookInput) (*booksvc.BookDTO, error) {
	s.created = &input
	return &booksvc.BookDTO{ID: uuid.New(), Title: input.Title, Stock: input.Stock}, nil
}

func (s *stubBookService) Update(ctx context.Context, bookID uuid.UUID, input booksvc.UpdateBookInput) (*booksvc.BookDTO, error) {
	panic("unimplemented")
}

func (s *stubBookService) Delete(ctx context.Context, bookID uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *stubBookService) Get(ctx context.Context, bookID uuid.UUID) (*booksvc.BookDTO, error) {
	return &booksvc.BookDTO{ID: bookID, Title: "Dom Casmurro"}, nil
}

func (s *stubBookService) List(ctx context.Context, input booksvc.ListBooksInput) (*booksvc.BookListResult, error) {
	return &booksvc.BookListResult{Items: []booksvc.BookDTO{}}, nil
}

func (s *stubBookService) AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*booksvc.BookDTO, error) {
	return &booksvc.BookDTO{ID: bookID, Stock: 5 + delta}, nil
}

func TestCreateBookController(t *testing.T) {
	stub := &stubBookService{}
	handler := CreateBook(stub, testLogger())

	body := `{"title":"  Dom Casmurro ","cost_price_cents":1500,"sale_price_cents":4500,"stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.created == nil || stub.created.Title != "Dom Casmurro" {
		t.Fatalf("expected trimmed title, got %+v", stub.created)
	}
}

func TestCreateBookControllerRejectsMissingTitle(t *testing.T) {
	handler := CreateBook(&stubBookService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(`{"stock":10}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCreateBookControllerRejectsBadComponentID(t *testing.T) {
	handler := CreateBook(&stubBookService{}, testLogger())

	body := `{"title":"Box Machado","is_bundle":true,"component_ids":["not-a-uuid"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetBookControllerRejectsBadID(t *testing.T) {
	handler := GetBook(&stubBookService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books/abc", nil)
	req = withURLParam(req, "bookID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdjustBookStockController(t *testing.T) {
	handler := AdjustBookStock(&stubBookService{}, testLogger())
	bookID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/"+bookID.String()+"/stock", strings.NewReader(`{"delta":-3}`))
	req = withURLParam(req, "bookID", bookID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data struct {
			Stock int `json:"stock"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Stock != 2 {
		t.Fatalf("expected stock 2 got %d", payload.Data.Stock)
	}
}

func TestDeleteBookController(t *testing.T) {
	stub := &stubBookService{}
	handler := DeleteBook(stub, testLogger())
	bookID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/"+bookID.String(), nil)
	req = withURLParam(req, "bookID", bookID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if !stub.deleted {
		t.Fatal("expected Delete to be invoked")
	}
}
