package books

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/pkg/db/models"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
)

type stubBooksRepo struct {
	byID    map[uuid.UUID]*models.Book
	created *models.Book
	updated *models.Book
	deleted []uuid.UUID
	listed  []models.Book
}

func newStubBooksRepo(seed ...*models.Book) *stubBooksRepo {
	repo := &stubBooksRepo{byID: map[uuid.UUID]*models.Book{}}
	for _, book := range seed {
		repo.byID[book.ID] = book
	}
	return repo
}

func (s *stubBooksRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubBooksRepo) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	s.created = book
	s.byID[book.ID] = book
	return book, nil
}

func (s *stubBooksRepo) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	s.updated = book
	s.byID[book.ID] = book
	return book, nil
}

func (s *stubBooksRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubBooksRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (s *stubBooksRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error) {
	found := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := s.byID[id]; ok {
			found = append(found, *book)
		}
	}
	return found, nil
}

func (s *stubBooksRepo) List(ctx context.Context, query ListQuery) ([]models.Book, error) {
	return s.listed, nil
}

func (s *stubBooksRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	panic("not implemented")
}

func newBooksService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestCreateBook(t *testing.T) {
	repo := newStubBooksRepo()
	svc := newBooksService(t, repo)

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:          "  Memorias Postumas  ",
		CostPriceCents: 1200,
		SalePriceCents: 3900,
		Stock:          7,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if book.Title != "Memorias Postumas" {
		t.Fatalf("expected trimmed title got %q", book.Title)
	}
	if book.Stock != 7 || book.IsBundle {
		t.Fatalf("unexpected book %+v", book)
	}
}

func TestCreateBookRejectsBlankTitle(t *testing.T) {
	svc := newBooksService(t, newStubBooksRepo())

	_, err := svc.Create(context.Background(), CreateBookInput{Title: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestCreateBundleForcesZeroStock(t *testing.T) {
	compA := &models.Book{ID: uuid.New(), Title: "Vol 1", Stock: 4}
	compB := &models.Book{ID: uuid.New(), Title: "Vol 2", Stock: 9}
	repo := newStubBooksRepo(compA, compB)
	svc := newBooksService(t, repo)

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title:          "Colecao Machado",
		SalePriceCents: 9900,
		Stock:          50,
		IsBundle:       true,
		ComponentIDs:   []uuid.UUID{compA.ID, compB.ID},
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if book.Stock != 0 {
		t.Fatalf("bundle stock must be zero got %d", book.Stock)
	}
	if len(book.ComponentIDs) != 2 {
		t.Fatalf("expected components kept got %+v", book.ComponentIDs)
	}
}

func TestCreateBundleComponentRules(t *testing.T) {
	plain := &models.Book{ID: uuid.New(), Title: "Avulso"}
	nested := &models.Book{ID: uuid.New(), Title: "Outra Colecao", IsBundle: true}
	repo := newStubBooksRepo(plain, nested)
	svc := newBooksService(t, repo)

	cases := []struct {
		name       string
		components []uuid.UUID
	}{
		{"empty", nil},
		{"too many", []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}},
		{"duplicate", []uuid.UUID{plain.ID, plain.ID}},
		{"missing", []uuid.UUID{uuid.New()}},
		{"nested bundle", []uuid.UUID{nested.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateBookInput{
				Title:        "Colecao",
				IsBundle:     true,
				ComponentIDs: tc.components,
			})
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error got %v", err)
			}
		})
	}
}

func TestUpdateBookConvertsBundleToPlain(t *testing.T) {
	component := &models.Book{ID: uuid.New(), Title: "Vol 1"}
	bundle := &models.Book{
		ID: uuid.New(), Title: "Colecao", IsBundle: true,
		ComponentIDs: []uuid.UUID{component.ID},
	}
	repo := newStubBooksRepo(component, bundle)
	svc := newBooksService(t, repo)

	isBundle := false
	stock := 3
	book, err := svc.Update(context.Background(), bundle.ID, UpdateBookInput{
		IsBundle: &isBundle,
		Stock:    &stock,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if book.IsBundle || len(book.ComponentIDs) != 0 {
		t.Fatalf("expected plain book got %+v", book)
	}
	if book.Stock != 3 {
		t.Fatalf("expected stock 3 got %d", book.Stock)
	}
}

func TestAdjustStock(t *testing.T) {
	book := &models.Book{ID: uuid.New(), Title: "Iracema", Stock: 5}
	repo := newStubBooksRepo(book)
	svc := newBooksService(t, repo)

	updated, err := svc.AdjustStock(context.Background(), book.ID, -3)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.Stock != 2 {
		t.Fatalf("expected stock 2 got %d", updated.Stock)
	}

	_, err = svc.AdjustStock(context.Background(), book.ID, -10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestAdjustStockRejectsBundles(t *testing.T) {
	bundle := &models.Book{ID: uuid.New(), Title: "Colecao", IsBundle: true}
	svc := newBooksService(t, newStubBooksRepo(bundle))

	_, err := svc.AdjustStock(context.Background(), bundle.ID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestGetBookNotFound(t *testing.T) {
	svc := newBooksService(t, newStubBooksRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
