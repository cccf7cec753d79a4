package ledger

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// TxRunner executes fn inside one DB transaction, passing repositories bound to
// that transaction. It is what makes a ledger append and its snapshot upsert
// atomic: both commit or neither does.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		snapshotRepo repository.SnapshotRepository,
	) error) error
}
