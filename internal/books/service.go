package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/pkg/db/models"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/pagination"
)

// MaxBundleComponents caps how many books a bundle may contain.
const MaxBundleComponents = 3

// Service exposes catalog management operations.
type Service interface {
	Create(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	Update(ctx context.Context, bookID uuid.UUID, input UpdateBookInput) (*BookDTO, error)
	Delete(ctx context.Context, bookID uuid.UUID) error
	Get(ctx context.Context, bookID uuid.UUID) (*BookDTO, error)
	List(ctx context.Context, input ListBooksInput) (*BookListResult, error)
	AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*BookDTO, error)
}

// CreateBookInput holds the validated payload to create a catalog entry.
type CreateBookInput struct {
	Title          string
	CostPriceCents int64
	SalePriceCents int64
	Stock          int
	IsBundle       bool
	ComponentIDs   []uuid.UUID
}

// UpdateBookInput holds optional mutation values for a catalog entry.
type UpdateBookInput struct {
	Title          *string
	CostPriceCents *int64
	SalePriceCents *int64
	Stock          *int
	IsBundle       *bool
	ComponentIDs   *[]uuid.UUID
}

// ListBooksInput filters catalog listings.
type ListBooksInput struct {
	Search     string
	IsBundle   *bool
	Pagination pagination.Params
}

type service struct {
	repo Repository
}

// NewService constructs a catalog service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("books repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.CostPriceCents < 0 || input.SalePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}

	book := &models.Book{
		Title:          title,
		CostPriceCents: input.CostPriceCents,
		SalePriceCents: input.SalePriceCents,
		Stock:          input.Stock,
		IsBundle:       input.IsBundle,
		ComponentIDs:   input.ComponentIDs,
	}

	if input.IsBundle {
		if err := s.validateComponents(ctx, uuid.Nil, input.ComponentIDs); err != nil {
			return nil, err
		}
		// Bundle availability derives from components, never from own stock.
		book.Stock = 0
	} else {
		if input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		if len(input.ComponentIDs) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "only bundles can list components")
		}
		book.ComponentIDs = nil
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert book")
	}

	dto := toBookDTO(*created)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, bookID uuid.UUID, input UpdateBookInput) (*BookDTO, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
		}
		book.Title = title
	}
	if input.CostPriceCents != nil {
		if *input.CostPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
		}
		book.CostPriceCents = *input.CostPriceCents
	}
	if input.SalePriceCents != nil {
		if *input.SalePriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot be negative")
		}
		book.SalePriceCents = *input.SalePriceCents
	}
	if input.IsBundle != nil {
		book.IsBundle = *input.IsBundle
	}
	if input.ComponentIDs != nil {
		book.ComponentIDs = *input.ComponentIDs
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		book.Stock = *input.Stock
	}

	if book.IsBundle {
		if err := s.validateComponents(ctx, book.ID, book.ComponentIDs); err != nil {
			return nil, err
		}
		book.Stock = 0
	} else {
		book.ComponentIDs = nil
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update book")
	}

	dto := toBookDTO(*updated)
	return &dto, nil
}

// Delete removes the catalog entry. Orders keep their own snapshots, so no
// historical data is lost.
func (s *service) Delete(ctx context.Context, bookID uuid.UUID) error {
	if _, err := s.findBook(ctx, bookID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, bookID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete book")
	}
	return nil
}

func (s *service) Get(ctx context.Context, bookID uuid.UUID) (*BookDTO, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	dto := toBookDTO(*book)
	return &dto, nil
}

func (s *service) List(ctx context.Context, input ListBooksInput) (*BookListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	found, err := s.repo.List(ctx, ListQuery{
		Search:   input.Search,
		IsBundle: input.IsBundle,
		Cursor:   cursor,
		Limit:    limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list books")
	}

	result := &BookListResult{Items: make([]BookDTO, 0, len(found))}
	hasMore := len(found) > limit
	if hasMore {
		found = found[:limit]
	}
	for _, book := range found {
		result.Items = append(result.Items, toBookDTO(book))
	}
	if hasMore {
		last := found[len(found)-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		result.NextCursor = &next
	}
	return result, nil
}

func (s *service) AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*BookDTO, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.IsBundle {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "bundles do not carry their own stock")
	}

	next := book.Stock + delta
	if next < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot drop below zero")
	}
	book.Stock = next

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update stock")
	}

	dto := toBookDTO(*updated)
	return &dto, nil
}

func (s *service) findBook(ctx context.Context, bookID uuid.UUID) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find book")
	}
	return book, nil
}

func (s *service) validateComponents(ctx context.Context, selfID uuid.UUID, componentIDs []uuid.UUID) error {
	if len(componentIDs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "bundle requires at least one component")
	}
	if len(componentIDs) > MaxBundleComponents {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("bundle cannot exceed %d components", MaxBundleComponents))
	}

	seen := make(map[uuid.UUID]struct{}, len(componentIDs))
	for _, id := range componentIDs {
		if id == selfID {
			return pkgerrors.New(pkgerrors.CodeValidation, "bundle cannot contain itself")
		}
		if _, dup := seen[id]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "bundle components must be unique")
		}
		seen[id] = struct{}{}
	}

	found, err := s.repo.FindByIDs(ctx, componentIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load components")
	}
	byID := make(map[uuid.UUID]models.Book, len(found))
	for _, component := range found {
		byID[component.ID] = component
	}
	for _, id := range componentIDs {
		component, ok := byID[id]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "bundle component not found")
		}
		if component.IsBundle {
			return pkgerrors.New(pkgerrors.CodeValidation, "bundle components cannot be bundles")
		}
	}
	return nil
}
