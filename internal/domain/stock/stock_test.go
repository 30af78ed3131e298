package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Estimation79/gestion-projets-dg-sub003/internal/domain/stock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStockLibre(t *testing.T) {
	assert.True(t, stock.StockLibre(dec("100"), dec("40")).Equal(dec("60")))
	assert.True(t, stock.StockLibre(dec("100"), dec("0")).Equal(dec("100")),
		"sans réservation, tout le stock est libre")
	assert.True(t, stock.StockLibre(dec("12.5"), dec("2.25")).Equal(dec("10.25")),
		"les quantités fractionnaires (kg) doivent rester exactes")
}

func TestSuffisant(t *testing.T) {
	assert.True(t, stock.Suffisant(dec("100"), dec("40"), dec("60")),
		"demander exactement le stock libre doit passer")
	assert.False(t, stock.Suffisant(dec("100"), dec("40"), dec("60.001")),
		"le moindre dépassement doit être refusé")
	assert.True(t, stock.Suffisant(dec("100"), dec("0"), dec("100")))
	assert.False(t, stock.Suffisant(dec("0"), dec("0"), dec("1")))
	assert.True(t, stock.Suffisant(dec("50"), dec("50"), dec("0")),
		"une demande nulle est toujours servable")
}

func TestRatioCriticite(t *testing.T) {
	assert.True(t, stock.RatioCriticite(dec("5"), dec("20")).Equal(dec("0.25")))
	assert.True(t, stock.RatioCriticite(dec("20"), dec("20")).Equal(dec("1")))
	assert.True(t, stock.RatioCriticite(dec("10"), dec("0")).Equal(decimal.Zero),
		"un seuil nul ne doit pas diviser par zéro")
	assert.True(t, stock.RatioCriticite(dec("10"), dec("-1")).Equal(decimal.Zero))
}

func TestValorisation(t *testing.T) {
	assert.True(t, stock.Valorisation(dec("12.5"), dec("3.80")).Equal(dec("47.5")))
	assert.True(t, stock.Valorisation(dec("0"), dec("99.99")).Equal(decimal.Zero))
}
