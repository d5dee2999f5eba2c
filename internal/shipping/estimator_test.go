package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuslibros/libros-backend/pkg/enums"
	pkgerrors "github.com/manuslibros/libros-backend/pkg/errors"
)

func TestNormalizeZip(t *testing.T) {
	normalized, err := NormalizeZip("01310-100")
	require.NoError(t, err)
	assert.Equal(t, "01310100", normalized)

	_, err = NormalizeZip("1234")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestZoneFor(t *testing.T) {
	assert.Equal(t, ZoneMetro, ZoneFor("01310100"))
	assert.Equal(t, ZoneMetro, ZoneFor("19999999"))
	assert.Equal(t, ZoneInterior, ZoneFor("20040030"))
	assert.Equal(t, ZoneInterior, ZoneFor("39999999"))
	assert.Equal(t, ZoneRemote, ZoneFor("40026900"))
	assert.Equal(t, ZoneRemote, ZoneFor("69005000"))
}

func TestQuoteFor_SedexAlwaysDearerAndFaster(t *testing.T) {
	for _, zip := range []string{"01310100", "20040030", "69005000"} {
		quote, err := QuoteFor(zip)
		require.NoError(t, err)

		assert.Greater(t, quote.Sedex.PriceCents, quote.Simples.PriceCents, "zip %s", zip)
		assert.Less(t, quote.Sedex.EstimatedDays, quote.Simples.EstimatedDays, "zip %s", zip)
	}
}

func TestQuoteFor_ZonePricing(t *testing.T) {
	metro, err := QuoteFor("01310100")
	require.NoError(t, err)
	interior, err := QuoteFor("30130010")
	require.NoError(t, err)
	remote, err := QuoteFor("69005000")
	require.NoError(t, err)

	assert.Less(t, metro.Simples.PriceCents, interior.Simples.PriceCents)
	assert.Less(t, interior.Simples.PriceCents, remote.Simples.PriceCents)
	assert.Less(t, metro.Simples.EstimatedDays, remote.Simples.EstimatedDays)
}

func TestPriceFor(t *testing.T) {
	price, err := PriceFor("01310-100", enums.ShippingMethodSedex)
	require.NoError(t, err)
	assert.Equal(t, int64(2800), price)

	_, err = PriceFor("01310-100", enums.ShippingMethod("carrier_pigeon"))
	require.Error(t, err)
}
