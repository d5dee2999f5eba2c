package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/manuslibros/libros-backend/internal/orders"
)

type stubOrderService struct {
	created   *ordersvc.CreateOrderInput
	confirmed *ordersvc.ConfirmPaymentInput
	dispatch  *ordersvc.DispatchInput
}

func (s *stubOrderService) Create(ctx context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	s.created = &input
	return &ordersvc.OrderDTO{ID: uuid.New()}, nil
}

func (s *stubOrderService) Get(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (s *stubOrderService) List(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderListResult, error) {
	return &ordersvc.OrderListResult{}, nil
}

func (s *stubOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

func (s *stubOrderService) UpdateDiscount(ctx context.Context, orderID uuid.UUID, newDiscountCents int64) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID, DiscountCents: newDiscountCents}, nil
}

func (s *stubOrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, input ordersvc.ConfirmPaymentInput) (*ordersvc.OrderDTO, error) {
	s.confirmed = &input
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (s *stubOrderService) Dispatch(ctx context.Context, orderID uuid.UUID, input ordersvc.DispatchInput) (*ordersvc.OrderDTO, error) {
	s.dispatch = &input
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func TestCreateOrderController(t *testing.T) {
	stub := &stubOrderService{}
	handler := CreateOrder(stub, testLogger())
	bookID := uuid.New()

	body := `{
		"customer":{"name":"Maria Souza","address":"Av. Paulista 1000","zip":"01310-100","phone":"11 91234-5678"},
		"items":[{"book_id":"` + bookID.String() + `","quantity":2}],
		"shipping_method":"sedex"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.created == nil {
		t.Fatal("expected Create to be invoked")
	}
	if len(stub.created.Items) != 1 || stub.created.Items[0].BookID != bookID {
		t.Fatalf("unexpected items %+v", stub.created.Items)
	}
}

func TestCreateOrderControllerRejectsUnknownMethod(t *testing.T) {
	handler := CreateOrder(&stubOrderService{}, testLogger())
	bookID := uuid.New()

	body := `{
		"customer":{"name":"Maria Souza","address":"Av. Paulista 1000","zip":"01310-100","phone":"11 91234-5678"},
		"items":[{"book_id":"` + bookID.String() + `","quantity":1}],
		"shipping_method":"pombo-correio"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCreateOrderControllerRejectsEmptyCart(t *testing.T) {
	handler := CreateOrder(&stubOrderService{}, testLogger())

	body := `{
		"customer":{"name":"Maria Souza","address":"Av. Paulista 1000","zip":"01310-100","phone":"11 91234-5678"},
		"items":[],
		"shipping_method":"simples"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestConfirmOrderPaymentController(t *testing.T) {
	stub := &stubOrderService{}
	handler := ConfirmOrderPayment(stub, testLogger())
	orderID := uuid.New()

	body := `{"receipt":{"file_name":"comprovante.pdf","content_type":"application/pdf"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/confirm-payment", strings.NewReader(body))
	req = withURLParam(req, "orderID", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.confirmed == nil || stub.confirmed.Receipt.FileName != "comprovante.pdf" {
		t.Fatalf("unexpected receipt %+v", stub.confirmed)
	}
}

func TestConfirmOrderPaymentControllerRequiresReceipt(t *testing.T) {
	handler := ConfirmOrderPayment(&stubOrderService{}, testLogger())
	orderID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/confirm-payment", strings.NewReader(`{"receipt":{}}`))
	req = withURLParam(req, "orderID", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestDispatchOrderController(t *testing.T) {
	stub := &stubOrderService{}
	handler := DispatchOrder(stub, testLogger())
	orderID := uuid.New()

	body := `{"tracking_code":"br123456789sp"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/dispatch", strings.NewReader(body))
	req = withURLParam(req, "orderID", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if stub.dispatch == nil || stub.dispatch.TrackingCode != "br123456789sp" {
		t.Fatalf("unexpected dispatch input %+v", stub.dispatch)
	}
}

func TestListOrdersControllerRejectsBadStatus(t *testing.T) {
	handler := ListOrders(&stubOrderService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=refunded", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
