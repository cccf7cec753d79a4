package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyChange — the balance arithmetic behind every ledger append
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyChange_PositiveChange(t *testing.T) {
	applied, after, err := inventory.ApplyChange(d("100"), d("500"), false)

	require.NoError(t, err)
	assert.True(t, d("500").Equal(applied))
	assert.True(t, d("600").Equal(after))
}

func TestApplyChange_NegativeChangeWithinBalance(t *testing.T) {
	applied, after, err := inventory.ApplyChange(d("600"), d("-200"), false)

	require.NoError(t, err)
	assert.True(t, d("-200").Equal(applied))
	assert.True(t, d("400").Equal(after))
}

func TestApplyChange_DrainToExactlyZero(t *testing.T) {
	_, after, err := inventory.ApplyChange(d("50"), d("-50"), false)

	require.NoError(t, err)
	assert.True(t, after.IsZero(), "draining the full balance must land on zero, not error")
}

func TestApplyChange_Oversell_Rejected(t *testing.T) {
	_, _, err := inventory.ApplyChange(d("50"), d("-80"), false)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyChange_Oversell_ClampedToZero(t *testing.T) {
	applied, after, err := inventory.ApplyChange(d("50"), d("-80"), true)

	require.NoError(t, err)
	assert.True(t, d("-50").Equal(applied), "clamp must reduce the change so the balance lands on zero")
	assert.True(t, after.IsZero())
}

func TestApplyChange_ClampOnEmptyKey_Rejected(t *testing.T) {
	_, _, err := inventory.ApplyChange(decimal.Zero, d("-10"), true)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "there is nothing to clamp on an empty key")
}

func TestApplyChange_ZeroChange_Rejected(t *testing.T) {
	_, _, err := inventory.ApplyChange(d("100"), decimal.Zero, false)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyChange_FractionalQuantities(t *testing.T) {
	_, after, err := inventory.ApplyChange(d("10.75"), d("-0.25"), false)

	require.NoError(t, err)
	assert.True(t, d("10.5").Equal(after))
}

// ──────────────────────────────────────────────────────────────────────────────
// Replay — rebuilding a balance from the full transaction chain
// ──────────────────────────────────────────────────────────────────────────────

func chainEntry(before, change, after string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		BeforeQty:      d(before),
		QuantityChange: d(change),
		AfterQty:       d(after),
	}
}

func TestReplay_ValidChain(t *testing.T) {
	entries := []*entity.LedgerEntry{
		chainEntry("0", "500", "500"),
		chainEntry("500", "-200", "300"),
		chainEntry("300", "100", "400"),
	}

	balance, err := inventory.Replay(entries)

	require.NoError(t, err)
	assert.True(t, d("400").Equal(balance))
}

func TestReplay_EmptyChain_ReturnsZero(t *testing.T) {
	balance, err := inventory.Replay(nil)

	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestReplay_BrokenArithmetic_Diverged(t *testing.T) {
	entries := []*entity.LedgerEntry{
		chainEntry("0", "500", "500"),
		chainEntry("500", "-200", "250"), // 500 - 200 != 250
	}

	_, err := inventory.Replay(entries)

	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
}

func TestReplay_BeforeQtyMismatch_Diverged(t *testing.T) {
	entries := []*entity.LedgerEntry{
		chainEntry("0", "500", "500"),
		chainEntry("450", "-200", "250"), // chain branches: before != running balance
	}

	_, err := inventory.Replay(entries)

	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
}

func TestReplay_NegativeBalance_Diverged(t *testing.T) {
	entries := []*entity.LedgerEntry{
		chainEntry("0", "-10", "-10"),
	}

	_, err := inventory.Replay(entries)

	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
}
