package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/types"
)

// Order is a customer sale moving through the payment and dispatch pipeline.
type Order struct {
	ID                    uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PlacedAt              time.Time             `gorm:"column:placed_at;not null"`
	Customer              types.Customer        `gorm:"column:customer;type:jsonb;serializer:json"`
	Items                 types.OrderItems      `gorm:"column:items;type:jsonb;serializer:json"`
	SellerID              *uuid.UUID            `gorm:"column:seller_id;type:uuid"`
	DiscountCents         int64                 `gorm:"column:discount_cents;not null;default:0"`
	ShippingCents         int64                 `gorm:"column:shipping_cents;not null;default:0"`
	ShippingMethod        enums.ShippingMethod  `gorm:"column:shipping_method;type:text;not null"`
	Status                enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending_payment'"`
	TotalValueCents       int64                 `gorm:"column:total_value_cents;not null"`
	TotalCostCents        int64                 `gorm:"column:total_cost_cents;not null"`
	TotalProfitCents      int64                 `gorm:"column:total_profit_cents;not null"`
	SellerCommissionCents int64                 `gorm:"column:seller_commission_cents;not null;default:0"`
	Receipt               *types.FileAttachment `gorm:"column:receipt;type:jsonb;serializer:json"`
	TrackingCode          *string               `gorm:"column:tracking_code"`
	ShippingDocument      *types.FileAttachment `gorm:"column:shipping_document;type:jsonb;serializer:json"`
	CreatedAt             time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
