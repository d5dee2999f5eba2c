package shipping

import (
	"strings"

	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
)

// Zone buckets destinations by the first two digits of the CEP. Metro zones
// (Sao Paulo capital ranges) ship cheaper and faster; remote zones carry a
// surcharge and a longer estimate.
type Zone string

const (
	ZoneMetro    Zone = "metro"
	ZoneInterior Zone = "interior"
	ZoneRemote   Zone = "remote"
)

const zipLength = 8

type rate struct {
	priceCents    int64
	estimatedDays int
}

var rateTable = map[enums.ShippingMethod]map[Zone]rate{
	enums.ShippingMethodSimples: {
		ZoneMetro:    {priceCents: 1400, estimatedDays: 5},
		ZoneInterior: {priceCents: 1800, estimatedDays: 7},
		ZoneRemote:   {priceCents: 2600, estimatedDays: 10},
	},
	enums.ShippingMethodSedex: {
		ZoneMetro:    {priceCents: 2800, estimatedDays: 2},
		ZoneInterior: {priceCents: 3500, estimatedDays: 3},
		ZoneRemote:   {priceCents: 4800, estimatedDays: 5},
	},
}

// QuoteOption is the priced estimate for one shipping method.
type QuoteOption struct {
	Method        enums.ShippingMethod `json:"method"`
	PriceCents    int64                `json:"price_cents"`
	EstimatedDays int                  `json:"estimated_days"`
}

// Quote carries the priced options for a destination.
type Quote struct {
	Zip     string      `json:"zip"`
	Zone    Zone        `json:"zone"`
	Simples QuoteOption `json:"simples"`
	Sedex   QuoteOption `json:"sedex"`
}

// NormalizeZip strips separators and validates the 8-digit CEP format.
func NormalizeZip(zip string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, zip)
	if len(cleaned) != zipLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "zip must have 8 digits")
	}
	return cleaned, nil
}

// ZoneFor resolves the delivery zone from a normalized CEP.
func ZoneFor(zip string) Zone {
	prefix := zip[:2]
	switch {
	case prefix <= "19":
		return ZoneMetro
	case prefix >= "40":
		return ZoneRemote
	default:
		return ZoneInterior
	}
}

// QuoteFor prices both shipping methods for the destination zip.
func QuoteFor(zip string) (*Quote, error) {
	normalized, err := NormalizeZip(zip)
	if err != nil {
		return nil, err
	}
	zone := ZoneFor(normalized)

	return &Quote{
		Zip:     normalized,
		Zone:    zone,
		Simples: option(enums.ShippingMethodSimples, zone),
		Sedex:   option(enums.ShippingMethodSedex, zone),
	}, nil
}

// PriceFor returns the shipping price for a single method.
func PriceFor(zip string, method enums.ShippingMethod) (int64, error) {
	if !method.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}
	quote, err := QuoteFor(zip)
	if err != nil {
		return 0, err
	}
	if method == enums.ShippingMethodSedex {
		return quote.Sedex.PriceCents, nil
	}
	return quote.Simples.PriceCents, nil
}

func option(method enums.ShippingMethod, zone Zone) QuoteOption {
	r := rateTable[method][zone]
	return QuoteOption{
		Method:        method,
		PriceCents:    r.priceCents,
		EstimatedDays: r.estimatedDays,
	}
}
