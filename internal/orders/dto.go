package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/types"
)

// OrderDTO is the API-facing view of an order.
type OrderDTO struct {
	ID                    uuid.UUID             `json:"id"`
	PlacedAt              time.Time             `json:"placed_at"`
	Customer              types.Customer        `json:"customer"`
	Items                 types.OrderItems      `json:"items"`
	SellerID              *uuid.UUID            `json:"seller_id,omitempty"`
	DiscountCents         int64                 `json:"discount_cents"`
	ShippingCents         int64                 `json:"shipping_cents"`
	ShippingMethod        enums.ShippingMethod  `json:"shipping_method"`
	Status                enums.OrderStatus     `json:"status"`
	TotalValueCents       int64                 `json:"total_value_cents"`
	TotalCostCents        int64                 `json:"total_cost_cents"`
	TotalProfitCents      int64                 `json:"total_profit_cents"`
	SellerCommissionCents int64                 `json:"seller_commission_cents"`
	Receipt               *types.FileAttachment `json:"receipt,omitempty"`
	TrackingCode          *string               `json:"tracking_code,omitempty"`
	ShippingDocument      *types.FileAttachment `json:"shipping_document,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// OrderListResult carries a page of orders plus the next cursor.
type OrderListResult struct {
	Items      []OrderDTO `json:"items"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// CreateOrderItemInput selects a catalog entry and quantity for the cart.
type CreateOrderItemInput struct {
	BookID   uuid.UUID
	Quantity int
}

// CreateOrderInput holds the validated payload to place an order.
type CreateOrderInput struct {
	Customer       types.Customer
	Items          []CreateOrderItemInput
	SellerID       *uuid.UUID
	DiscountCents  int64
	ShippingMethod enums.ShippingMethod
}

// ConfirmPaymentInput carries the receipt recorded when payment is verified.
type ConfirmPaymentInput struct {
	Receipt types.FileAttachment
}

// DispatchInput carries the carrier data recorded when the order ships.
type DispatchInput struct {
	TrackingCode     string
	ShippingDocument *types.FileAttachment
}

func toOrderDTO(order models.Order) OrderDTO {
	return OrderDTO{
		ID:                    order.ID,
		PlacedAt:              order.PlacedAt,
		Customer:              order.Customer,
		Items:                 order.Items,
		SellerID:              order.SellerID,
		DiscountCents:         order.DiscountCents,
		ShippingCents:         order.ShippingCents,
		ShippingMethod:        order.ShippingMethod,
		Status:                order.Status,
		TotalValueCents:       order.TotalValueCents,
		TotalCostCents:        order.TotalCostCents,
		TotalProfitCents:      order.TotalProfitCents,
		SellerCommissionCents: order.SellerCommissionCents,
		Receipt:               order.Receipt,
		TrackingCode:          order.TrackingCode,
		ShippingDocument:      order.ShippingDocument,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
}
