package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/api/responses"
	"github.com/manuslibros/libros-backend/api/validators"
	ordersvc "github.com/manuslibros/libros-backend/internal/orders"
	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/logger"
	"github.com/manuslibros/libros-backend/pkg/pagination"
	"github.com/manuslibros/libros-backend/pkg/types"
)

type orderCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

type orderItemRequest struct {
	BookID   string `json:"book_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Customer       orderCustomerRequest `json:"customer" validate:"required"`
	Items          []orderItemRequest   `json:"items" validate:"required,min=1,dive"`
	SellerID       *string              `json:"seller_id,omitempty" validate:"omitempty,uuid"`
	DiscountCents  int64                `json:"discount_cents" validate:"min=0"`
	ShippingMethod string               `json:"shipping_method" validate:"required"`
}

type updateDiscountRequest struct {
	DiscountCents int64 `json:"discount_cents" validate:"min=0"`
}

type attachmentRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
	Data        string `json:"data,omitempty"`
}

type confirmPaymentRequest struct {
	Receipt attachmentRequest `json:"receipt" validate:"required"`
}

type dispatchRequest struct {
	TrackingCode     string             `json:"tracking_code" validate:"required"`
	ShippingDocument *attachmentRequest `json:"shipping_document,omitempty"`
}

// CreateOrder places an order in pending_payment.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParseShippingMethod(strings.TrimSpace(payload.ShippingMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method"))
			return
		}

		items := make([]ordersvc.CreateOrderItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			bookID, err := uuid.Parse(item.BookID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book id"))
				return
			}
			items = append(items, ordersvc.CreateOrderItemInput{BookID: bookID, Quantity: item.Quantity})
		}

		input := ordersvc.CreateOrderInput{
			Customer: types.Customer{
				Name:    strings.TrimSpace(payload.Customer.Name),
				Address: strings.TrimSpace(payload.Customer.Address),
				Zip:     strings.TrimSpace(payload.Customer.Zip),
				Phone:   strings.TrimSpace(payload.Customer.Phone),
				Email:   strings.TrimSpace(payload.Customer.Email),
			},
			Items:          items,
			DiscountCents:  payload.DiscountCents,
			ShippingMethod: method,
		}
		if payload.SellerID != nil {
			sellerID, err := uuid.Parse(*payload.SellerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id"))
				return
			}
			input.SellerID = &sellerID
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// GetOrder returns one order.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ListOrders returns a cursor page of orders with optional filters.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.ListOrdersInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("seller_id")); raw != "" {
			sellerID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id"))
				return
			}
			input.SellerID = &sellerID
		}
		if from, err := validators.ParseQueryDate(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if !from.IsZero() {
			input.From = &from
		}
		if to, err := validators.ParseQueryDate(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if !to.IsZero() {
			input.To = &to
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// DeleteOrder removes an order that is still pending payment.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// UpdateOrderDiscount reprices a pending order with a new discount.
func UpdateOrderDiscount(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateDiscount(r.Context(), orderID, payload.DiscountCents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ConfirmOrderPayment records the receipt and moves stock.
func ConfirmOrderPayment(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ConfirmPayment(r.Context(), orderID, ordersvc.ConfirmPaymentInput{
			Receipt: types.FileAttachment{
				FileName:    strings.TrimSpace(payload.Receipt.FileName),
				ContentType: payload.Receipt.ContentType,
				Data:        payload.Receipt.Data,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// DispatchOrder records the tracking code and marks the order shipped.
func DispatchOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dispatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.DispatchInput{TrackingCode: payload.TrackingCode}
		if payload.ShippingDocument != nil {
			input.ShippingDocument = &types.FileAttachment{
				FileName:    strings.TrimSpace(payload.ShippingDocument.FileName),
				ContentType: payload.ShippingDocument.ContentType,
				Data:        payload.ShippingDocument.Data,
			}
		}

		order, err := svc.Dispatch(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
