package books

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/repo"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/pagination"
)

// Repository defines persistence operations for catalog entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error)
	List(ctx context.Context, query ListQuery) ([]models.Book, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// ListQuery filters and paginates catalog listings.
type ListQuery struct {
	Search   string
	IsBundle *bool
	Cursor   *pagination.Cursor
	Limit    int
}

type repository struct {
	base repo.Base
}

// NewRepository builds a books repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.base.DB(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *repository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.base.DB(ctx).Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.DB(ctx).Where("id = ?", id).Delete(&models.Book{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.base.DB(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Book
	err := r.base.DB(ctx).Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Book, error) {
	q := r.base.DB(ctx).Model(&models.Book{})

	if search := strings.TrimSpace(query.Search); search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if query.IsBundle != nil {
		q = q.Where("is_bundle = ?", *query.IsBundle)
	}
	if query.Cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID,
		)
	}

	limit := pagination.LimitWithBuffer(query.Limit)

	var found []models.Book
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// DecrementStock subtracts quantity from the stored stock, clamping at zero.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return r.base.DB(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr(
			"CASE WHEN stock - ? < 0 THEN 0 ELSE stock - ? END",
			quantity, quantity,
		)).Error
}
