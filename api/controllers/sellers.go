package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/manuslibros/libros-backend/api/responses"
	"github.com/manuslibros/libros-backend/api/validators"
	sellersvc "github.com/manuslibros/libros-backend/internal/sellers"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/logger"
)

type createSellerRequest struct {
	Username       string           `json:"username" validate:"required"`
	Password       string           `json:"password,omitempty"`
	Name           string           `json:"name" validate:"required"`
	Email          string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string           `json:"phone,omitempty"`
	BankAccount    string           `json:"bank_account,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

type updateSellerRequest struct {
	Name           *string          `json:"name,omitempty"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	BankAccount    *string          `json:"bank_account,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

// CreateSeller provisions a seller profile plus its login account.
func CreateSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		var payload createSellerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), sellersvc.CreateSellerInput{
			Username:       strings.TrimSpace(payload.Username),
			Password:       payload.Password,
			Name:           strings.TrimSpace(payload.Name),
			Email:          strings.TrimSpace(payload.Email),
			Phone:          strings.TrimSpace(payload.Phone),
			BankAccount:    strings.TrimSpace(payload.BankAccount),
			CommissionRate: payload.CommissionRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateSeller applies a partial update to a seller profile.
func UpdateSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		sellerID, err := pathUUID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSellerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.Update(r.Context(), sellerID, sellersvc.UpdateSellerInput{
			Name:           payload.Name,
			Email:          payload.Email,
			Phone:          payload.Phone,
			BankAccount:    payload.BankAccount,
			CommissionRate: payload.CommissionRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}

// GetSeller returns one seller profile.
func GetSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		sellerID, err := pathUUID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.Get(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}

// ListSellers returns the roster, optionally only active profiles.
func ListSellers(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		activeOnly := strings.TrimSpace(r.URL.Query().Get("active_only")) == "true"
		roster, err := svc.List(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, roster)
	}
}

// DeactivateSeller disables the seller profile and its login.
func DeactivateSeller(svc sellersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		sellerID, err := pathUUID(r, "sellerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), sellerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
