package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manuslibros/libros-backend/api/controllers"
	"github.com/manuslibros/libros-backend/api/middleware"
	"github.com/manuslibros/libros-backend/internal/auth"
	"github.com/manuslibros/libros-backend/internal/books"
	"github.com/manuslibros/libros-backend/internal/orders"
	"github.com/manuslibros/libros-backend/internal/reports"
	"github.com/manuslibros/libros-backend/internal/sellers"
	"github.com/manuslibros/libros-backend/pkg/auth/session"
	"github.com/manuslibros/libros-backend/pkg/config"
	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/logger"
	"github.com/manuslibros/libros-backend/pkg/metrics"
	"github.com/manuslibros/libros-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionManager session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService    auth.Service
	BooksService   books.Service
	SellersService sellers.Service
	OrdersService  orders.Service
	ReportsService reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionManager, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/shipping/quote", controllers.ShippingQuote(logg))

		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.ListBooks(deps.BooksService, logg))
			r.Get("/{bookID}", controllers.GetBook(deps.BooksService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.AccountRoleAdmin), logg))
				r.Post("/", controllers.CreateBook(deps.BooksService, logg))
				r.Patch("/{bookID}", controllers.UpdateBook(deps.BooksService, logg))
				r.Delete("/{bookID}", controllers.DeleteBook(deps.BooksService, logg))
				r.Post("/{bookID}/stock", controllers.AdjustBookStock(deps.BooksService, logg))
			})
		})

		r.Route("/sellers", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.AccountRoleAdmin), logg))
			r.Get("/", controllers.ListSellers(deps.SellersService, logg))
			r.Post("/", controllers.CreateSeller(deps.SellersService, logg))
			r.Get("/{sellerID}", controllers.GetSeller(deps.SellersService, logg))
			r.Patch("/{sellerID}", controllers.UpdateSeller(deps.SellersService, logg))
			r.Delete("/{sellerID}", controllers.DeactivateSeller(deps.SellersService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
			r.Post("/", controllers.CreateOrder(deps.OrdersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.OrdersService, logg))
			r.Post("/{orderID}/confirm-payment", controllers.ConfirmOrderPayment(deps.OrdersService, logg))
			r.Post("/{orderID}/dispatch", controllers.DispatchOrder(deps.OrdersService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.AccountRoleAdmin), logg))
				r.Patch("/{orderID}/discount", controllers.UpdateOrderDiscount(deps.OrdersService, logg))
				r.Delete("/{orderID}", controllers.DeleteOrder(deps.OrdersService, logg))
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportsSummary(deps.ReportsService, deps.SellersService, logg))
			r.Get("/dashboard", controllers.ReportsDashboard(deps.ReportsService, deps.SellersService, logg))
		})
	})

	return r
}
