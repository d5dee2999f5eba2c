package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. Bundles carry zero stock of their own and list
// the component books they expand into at fulfillment time.
type Book struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string      `gorm:"column:title;not null"`
	CostPriceCents int64       `gorm:"column:cost_price_cents;not null"`
	SalePriceCents int64       `gorm:"column:sale_price_cents;not null"`
	Stock          int         `gorm:"column:stock;not null;default:0"`
	IsBundle       bool        `gorm:"column:is_bundle;not null;default:false"`
	ComponentIDs   []uuid.UUID `gorm:"column:component_ids;type:jsonb;serializer:json"`
	CreatedAt      time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
