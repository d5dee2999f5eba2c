package sellers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manuslibros/libros-backend/internal/repo"
	"github.com/manuslibros/libros-backend/pkg/db/models"
)

// Repository defines persistence operations for seller profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, seller *models.Seller) (*models.Seller, error)
	Update(ctx context.Context, seller *models.Seller) (*models.Seller, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Seller, error)
	List(ctx context.Context, activeOnly bool) ([]models.Seller, error)
}

type repository struct {
	base repo.Base
}

// NewRepository builds a sellers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	if err := r.base.DB(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

func (r *repository) Update(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	if err := r.base.DB(ctx).Save(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := r.base.DB(ctx).Preload("User").Where("id = ?", id).First(&seller).Error
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := r.base.DB(ctx).Preload("User").Where("user_id = ?", userID).First(&seller).Error
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Seller, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Seller
	err := r.base.DB(ctx).Preload("User").Where("id IN ?", ids).Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]models.Seller, error) {
	q := r.base.DB(ctx).Preload("User").Order("created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var found []models.Seller
	if err := q.Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
