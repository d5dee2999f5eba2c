package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/api/responses"
	"github.com/manuslibros/libros-backend/api/validators"
	booksvc "github.com/manuslibros/libros-backend/internal/books"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/logger"
	"github.com/manuslibros/libros-backend/pkg/pagination"
)

type createBookRequest struct {
	Title          string   `json:"title" validate:"required"`
	CostPriceCents int64    `json:"cost_price_cents" validate:"min=0"`
	SalePriceCents int64    `json:"sale_price_cents" validate:"min=0"`
	Stock          int      `json:"stock" validate:"min=0"`
	IsBundle       bool     `json:"is_bundle"`
	ComponentIDs   []string `json:"component_ids,omitempty"`
}

type updateBookRequest struct {
	Title          *string   `json:"title,omitempty"`
	CostPriceCents *int64    `json:"cost_price_cents,omitempty" validate:"omitempty,min=0"`
	SalePriceCents *int64    `json:"sale_price_cents,omitempty" validate:"omitempty,min=0"`
	Stock          *int      `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsBundle       *bool     `json:"is_bundle,omitempty"`
	ComponentIDs   *[]string `json:"component_ids,omitempty"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CreateBook handles catalog entry creation.
func CreateBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		componentIDs, err := parseUUIDList(payload.ComponentIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.Create(r.Context(), booksvc.CreateBookInput{
			Title:          strings.TrimSpace(payload.Title),
			CostPriceCents: payload.CostPriceCents,
			SalePriceCents: payload.SalePriceCents,
			Stock:          payload.Stock,
			IsBundle:       payload.IsBundle,
			ComponentIDs:   componentIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, book)
	}
}

// UpdateBook applies a partial update to a catalog entry.
func UpdateBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := pathUUID(r, "bookID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := booksvc.UpdateBookInput{
			Title:          payload.Title,
			CostPriceCents: payload.CostPriceCents,
			SalePriceCents: payload.SalePriceCents,
			Stock:          payload.Stock,
			IsBundle:       payload.IsBundle,
		}
		if payload.ComponentIDs != nil {
			componentIDs, err := parseUUIDList(*payload.ComponentIDs)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ComponentIDs = &componentIDs
		}

		book, err := svc.Update(r.Context(), bookID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

// DeleteBook removes a catalog entry.
func DeleteBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := pathUUID(r, "bookID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), bookID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetBook returns one catalog entry.
func GetBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := pathUUID(r, "bookID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.Get(r.Context(), bookID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

// ListBooks returns a cursor page of catalog entries.
func ListBooks(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := booksvc.ListBooksInput{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("is_bundle")); raw != "" {
			isBundle := raw == "true"
			input.IsBundle = &isBundle
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdjustBookStock applies a signed stock delta to a plain title.
func AdjustBookStock(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		bookID, err := pathUUID(r, "bookID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.AdjustStock(r.Context(), bookID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, book)
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return parsed, nil
}

func parseUUIDList(values []string) ([]uuid.UUID, error) {
	result := make([]uuid.UUID, 0, len(values))
	for _, raw := range values {
		if raw == "" {
			continue
		}
		parsed, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component id")
		}
		result = append(result, parsed)
	}
	return result, nil
}
