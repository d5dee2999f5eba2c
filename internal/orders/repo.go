package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/repo"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, error)
}

// ListQuery filters and paginates order listings.
type ListQuery struct {
	Status   *enums.OrderStatus
	SellerID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Cursor   *pagination.Cursor
	Limit    int
}

type repository struct {
	base repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.base.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.base.DB(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.DB(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.base.DB(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Order, error) {
	q := r.base.DB(ctx).Model(&models.Order{})

	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.SellerID != nil {
		q = q.Where("seller_id = ?", *query.SellerID)
	}
	if query.From != nil {
		q = q.Where("placed_at >= ?", *query.From)
	}
	if query.To != nil {
		q = q.Where("placed_at <= ?", *query.To)
	}
	if query.Cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID,
		)
	}

	limit := pagination.LimitWithBuffer(query.Limit)

	var found []models.Order
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}
