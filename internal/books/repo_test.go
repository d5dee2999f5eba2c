package books

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/pkg/db/models"
)

func setupBooksTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	books := `
CREATE TABLE IF NOT EXISTS books (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  cost_price_cents INTEGER NOT NULL DEFAULT 0,
  sale_price_cents INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0,
  is_bundle INTEGER NOT NULL DEFAULT 0,
  component_ids TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(books).Error)
	return db
}

func insertBook(t *testing.T, db *gorm.DB, title string, stock int) *models.Book {
	t.Helper()
	book := &models.Book{ID: uuid.New(), Title: title, Stock: stock, SalePriceCents: 2500}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestBooksRepoDecrementStockClampsAtZero(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	book := insertBook(t, db, "O Cortico", 3)

	require.NoError(t, repo.DecrementStock(ctx, book.ID, 2))
	found, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Stock)

	// oversell clamps instead of going negative
	require.NoError(t, repo.DecrementStock(ctx, book.ID, 5))
	found, err = repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Stock)
}

func TestBooksRepoComponentIDsRoundTrip(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	compA := insertBook(t, db, "Vol 1", 4)
	compB := insertBook(t, db, "Vol 2", 6)

	bundle := &models.Book{
		ID:           uuid.New(),
		Title:        "Colecao Alencar",
		IsBundle:     true,
		ComponentIDs: []uuid.UUID{compA.ID, compB.ID},
	}
	_, err := repo.Create(ctx, bundle)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, bundle.ID)
	require.NoError(t, err)
	require.Len(t, found.ComponentIDs, 2)
	assert.Equal(t, compA.ID, found.ComponentIDs[0])
	assert.Equal(t, compB.ID, found.ComponentIDs[1])
}

func TestBooksRepoListSearch(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insertBook(t, db, "Dom Casmurro Especial", 1)
	insertBook(t, db, "Helena", 1)

	found, err := repo.List(ctx, ListQuery{Search: "casmurro", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, book := range found {
		assert.Contains(t, book.Title, "Casmurro")
	}
}
