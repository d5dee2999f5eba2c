package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manuslibros/libros-backend/api/middleware"
	"github.com/manuslibros/libros-backend/api/responses"
	"github.com/manuslibros/libros-backend/api/validators"
	reportsvc "github.com/manuslibros/libros-backend/internal/reports"
	sellersvc "github.com/manuslibros/libros-backend/internal/sellers"
	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/logger"
)

// ReportsSummary aggregates completed sales over a calendar window.
// Seller accounts are always scoped to their own sales.
func ReportsSummary(svc reportsvc.Service, sellers sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		from, to, err := reportWindow(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := reportsvc.SummaryInput{From: from, To: to}

		if RoleFromRequest(r) == string(enums.AccountRoleSeller) {
			sellerID, err := resolveActorSeller(r, sellers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.SellerID = &sellerID
		} else {
			if raw := strings.TrimSpace(r.URL.Query().Get("seller_id")); raw != "" {
				sellerID, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id"))
					return
				}
				input.SellerID = &sellerID
			}
			input.DirectOnly = strings.TrimSpace(r.URL.Query().Get("direct_only")) == "true"
		}

		summary, err := svc.Summary(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// ReportsDashboard returns the operational snapshot. Without an explicit
// window it covers the current calendar month.
func ReportsDashboard(svc reportsvc.Service, sellers sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if from.IsZero() || to.IsZero() {
			now := time.Now()
			from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			to = now
		}

		input := reportsvc.DashboardInput{From: from, To: to}

		if RoleFromRequest(r) == string(enums.AccountRoleSeller) {
			sellerID, err := resolveActorSeller(r, sellers)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.SellerID = &sellerID
		}

		dashboard, err := svc.Dashboard(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboard)
	}
}

// RoleFromRequest reads the actor role seeded by the auth middleware.
func RoleFromRequest(r *http.Request) string {
	return middleware.RoleFromContext(r.Context())
}

func reportWindow(r *http.Request) (time.Time, time.Time, error) {
	from, err := validators.ParseQueryDate(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := validators.ParseQueryDate(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "from and to query parameters required")
	}
	return from, to, nil
}

func resolveActorSeller(r *http.Request, sellers sellersvc.Service) (uuid.UUID, error) {
	if sellers == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable")
	}
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	seller, err := sellers.GetByUserID(r.Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	return seller.ID, nil
}
