package books

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/pkg/db/models"
)

// BookDTO is the API-facing view of a catalog entry.
type BookDTO struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	CostPriceCents int64       `json:"cost_price_cents"`
	SalePriceCents int64       `json:"sale_price_cents"`
	Stock          int         `json:"stock"`
	IsBundle       bool        `json:"is_bundle"`
	ComponentIDs   []uuid.UUID `json:"component_ids,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// BookListResult carries a page of catalog entries plus the next cursor.
type BookListResult struct {
	Items      []BookDTO `json:"items"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

func toBookDTO(book models.Book) BookDTO {
	return BookDTO{
		ID:             book.ID,
		Title:          book.Title,
		CostPriceCents: book.CostPriceCents,
		SalePriceCents: book.SalePriceCents,
		Stock:          book.Stock,
		IsBundle:       book.IsBundle,
		ComponentIDs:   book.ComponentIDs,
		CreatedAt:      book.CreatedAt,
		UpdatedAt:      book.UpdatedAt,
	}
}
