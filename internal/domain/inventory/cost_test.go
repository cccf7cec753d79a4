package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
)

func TestWeightedAverageCost_BlendsIncomingStock(t *testing.T) {
	// 100 units at 10 plus 50 units at 16 → 150 units at 12.
	cost := inventory.WeightedAverageCost(d("100"), d("10"), d("50"), d("16"))
	assert.True(t, d("12").Equal(cost))
}

func TestWeightedAverageCost_FirstReceiptSetsCost(t *testing.T) {
	cost := inventory.WeightedAverageCost(decimal.Zero, decimal.Zero, d("30"), d("7.5"))
	assert.True(t, d("7.5").Equal(cost))
}

func TestWeightedAverageCost_EmptyTotalsReturnZero(t *testing.T) {
	cost := inventory.WeightedAverageCost(decimal.Zero, d("10"), decimal.Zero, d("16"))
	assert.True(t, cost.IsZero())
}
