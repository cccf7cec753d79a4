package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// ApplyChange computes the applied change and resulting balance for a ledger
// append (domain service, no I/O).
//
// A change that would take the balance negative is rejected with
// ErrInsufficientStock unless clamp is set, in which case the change is reduced
// so the balance lands exactly on zero. Clamping an already-empty key is still
// an error: there is nothing to adjust.
func ApplyChange(before, change decimal.Decimal, clamp bool) (applied, after decimal.Decimal, err error) {
	if change.IsZero() {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	after = before.Add(change)
	if after.Sign() >= 0 {
		return change, after, nil
	}
	if !clamp {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
	}
	if before.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
	}
	return before.Neg(), decimal.Zero, nil
}

// Replay walks the full entry list for one key in creation order starting from
// zero and returns the reconstructed balance. It fails with ErrLedgerDiverged
// when any entry breaks the before + change == after chain or the chain
// branches (an entry's BeforeQty not matching the running balance).
func Replay(entries []*entity.LedgerEntry) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, e := range entries {
		if !e.BeforeQty.Equal(balance) {
			return decimal.Zero, domain.ErrLedgerDiverged
		}
		if !e.BeforeQty.Add(e.QuantityChange).Equal(e.AfterQty) {
			return decimal.Zero, domain.ErrLedgerDiverged
		}
		if e.AfterQty.Sign() < 0 {
			return decimal.Zero, domain.ErrLedgerDiverged
		}
		balance = e.AfterQty
	}
	return balance, nil
}
