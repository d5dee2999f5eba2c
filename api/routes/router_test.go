package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/manuslibros/libros-backend/internal/auth"
	booksvc "github.com/manuslibros/libros-backend/internal/books"
	ordersvc "github.com/manuslibros/libros-backend/internal/orders"
	reportsvc "github.com/manuslibros/libros-backend/internal/reports"
	sellersvc "github.com/manuslibros/libros-backend/internal/sellers"
	pkgAuth "github.com/manuslibros/libros-backend/pkg/auth"
	"github.com/manuslibros/libros-backend/pkg/auth/session"
	"github.com/manuslibros/libros-backend/pkg/config"
	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return &authsvc.LoginResponse{AccessToken: "token", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.RefreshResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubBooksService struct{}

func (stubBooksService) Create(ctx context.Context, input booksvc.CreateBookInput) (*booksvc.BookDTO, error) {
	panic("unimplemented")
}

func (stubBooksService) Update(ctx context.Context, bookID uuid.UUID, input booksvc.UpdateBookInput) (*booksvc.BookDTO, error) {
	panic("unimplemented")
}

func (stubBooksService) Delete(ctx context.Context, bookID uuid.UUID) error {
	panic("unimplemented")
}

func (stubBooksService) Get(ctx context.Context, bookID uuid.UUID) (*booksvc.BookDTO, error) {
	panic("unimplemented")
}

func (stubBooksService) List(ctx context.Context, input booksvc.ListBooksInput) (*booksvc.BookListResult, error) {
	return &booksvc.BookListResult{}, nil
}

func (stubBooksService) AdjustStock(ctx context.Context, bookID uuid.UUID, delta int) (*booksvc.BookDTO, error) {
	panic("unimplemented")
}

type stubSellersService struct{}

func (stubSellersService) Create(ctx context.Context, input sellersvc.CreateSellerInput) (*sellersvc.CreatedSellerDTO, error) {
	panic("unimplemented")
}

func (stubSellersService) Update(ctx context.Context, sellerID uuid.UUID, input sellersvc.UpdateSellerInput) (*sellersvc.SellerDTO, error) {
	panic("unimplemented")
}

func (stubSellersService) Get(ctx context.Context, sellerID uuid.UUID) (*sellersvc.SellerDTO, error) {
	panic("unimplemented")
}

func (stubSellersService) GetByUserID(ctx context.Context, userID uuid.UUID) (*sellersvc.SellerDTO, error) {
	return &sellersvc.SellerDTO{ID: uuid.New(), UserID: userID}, nil
}

func (stubSellersService) List(ctx context.Context, activeOnly bool) ([]sellersvc.SellerDTO, error) {
	return []sellersvc.SellerDTO{}, nil
}

func (stubSellersService) Deactivate(ctx context.Context, sellerID uuid.UUID) error {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(ctx context.Context, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) List(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderListResult, error) {
	return &ordersvc.OrderListResult{}, nil
}

func (stubOrdersService) Delete(ctx context.Context, orderID uuid.UUID) error {
	panic("unimplemented")
}

func (stubOrdersService) UpdateDiscount(ctx context.Context, orderID uuid.UUID, newDiscountCents int64) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, input ordersvc.ConfirmPaymentInput) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Dispatch(ctx context.Context, orderID uuid.UUID, input ordersvc.DispatchInput) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

type stubReportsService struct{}

func (stubReportsService) Summary(ctx context.Context, input reportsvc.SummaryInput) (*reportsvc.SummaryDTO, error) {
	return &reportsvc.SummaryDTO{}, nil
}

func (stubReportsService) Dashboard(ctx context.Context, input reportsvc.DashboardInput) (*reportsvc.DashboardDTO, error) {
	return &reportsvc.DashboardDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             stubPinger{},
		SessionManager: stubSessionChecker{},
		AuthService:    stubAuthService{},
		BooksService:   stubBooksService{},
		SellersService: stubSellersService{},
		OrdersService:  stubOrdersService{},
		ReportsService: stubReportsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AccountRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestSellerCanReadCatalog(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for seller catalog read got %d", resp.Code)
	}
}

func TestSellerRosterRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	seller := httptest.NewRequest(http.MethodGet, "/api/v1/sellers", nil)
	seller.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleSeller))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, seller)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/sellers", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestShippingQuoteWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/quote?zip=01310-100", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.AccountRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	// bad body still proves the route is reachable without credentials
	if resp.Code == http.StatusUnauthorized || resp.Code == http.StatusNotFound {
		t.Fatalf("expected login to be public, got %d", resp.Code)
	}
}
