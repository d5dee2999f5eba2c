package controllers

import (
	"net/http"
	"strings"

	"github.com/manuslibros/libros-backend/api/responses"
	"github.com/manuslibros/libros-backend/internal/shipping"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
	"github.com/manuslibros/libros-backend/pkg/logger"
)

// ShippingQuote prices both carrier services for a destination CEP.
func ShippingQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zip := strings.TrimSpace(r.URL.Query().Get("zip"))
		if zip == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "zip query parameter required"))
			return
		}

		quote, err := shipping.QuoteFor(zip)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
