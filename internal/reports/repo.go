package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/repo"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
)

// Repository exposes the read-only queries behind sales reporting.
type Repository interface {
	CompletedBetween(ctx context.Context, from, to time.Time, filter SellerFilter) ([]models.Order, error)
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
}

// SellerFilter narrows report queries to one seller or to direct sales only.
type SellerFilter struct {
	SellerID   *uuid.UUID
	DirectOnly bool
}

type repository struct {
	base repo.Base
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

// CompletedBetween returns orders placed in the window that have payment
// confirmed. Pending orders never count toward sales figures.
func (r *repository) CompletedBetween(ctx context.Context, from, to time.Time, filter SellerFilter) ([]models.Order, error) {
	q := r.base.DB(ctx).
		Model(&models.Order{}).
		Where("status <> ?", enums.OrderStatusPendingPayment).
		Where("placed_at >= ? AND placed_at <= ?", from, to)

	if filter.DirectOnly {
		q = q.Where("seller_id IS NULL")
	} else if filter.SellerID != nil {
		q = q.Where("seller_id = ?", *filter.SellerID)
	}

	var found []models.Order
	if err := q.Order("placed_at ASC").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
