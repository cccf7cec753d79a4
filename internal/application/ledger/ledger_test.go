package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/application/ledger"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory store: ledger + snapshots behind one mutex so Run serializes the
// commit the way a row lock does in Postgres.
// ──────────────────────────────────────────────────────────────────────────────

type memKey struct {
	itemType    entity.ItemType
	itemID      int64
	warehouseID int64
}

type memStore struct {
	mu        sync.Mutex
	entries   map[memKey][]*entity.LedgerEntry
	snapshots map[memKey]*entity.StockSnapshot
}

func newMemStore() *memStore {
	return &memStore{
		entries:   make(map[memKey][]*entity.LedgerEntry),
		snapshots: make(map[memKey]*entity.StockSnapshot),
	}
}

// Run implements ledger.TxRunner over the in-memory store.
func (s *memStore) Run(_ context.Context, fn func(repository.LedgerRepository, repository.SnapshotRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memLedgerRepo{s: s}, &memSnapshotRepo{s: s})
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(_ context.Context, entry *entity.LedgerEntry) error {
	k := memKey{entry.ItemType, entry.ItemID, entry.WarehouseID}
	r.s.entries[k] = append(r.s.entries[k], entry)
	return nil
}

func (r *memLedgerRepo) ListByKey(_ context.Context, itemType entity.ItemType, itemID, warehouseID int64) ([]*entity.LedgerEntry, error) {
	return r.s.entries[memKey{itemType, itemID, warehouseID}], nil
}

type memSnapshotRepo struct{ s *memStore }

func (r *memSnapshotRepo) Get(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error) {
	return r.GetForUpdate(ctx, itemType, itemID, warehouseID)
}

func (r *memSnapshotRepo) GetForUpdate(_ context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error) {
	k := memKey{itemType, itemID, warehouseID}
	if snap, ok := r.s.snapshots[k]; ok {
		c := *snap
		return &c, nil
	}
	return &entity.StockSnapshot{
		ItemType:       itemType,
		ItemID:         itemID,
		WarehouseID:    warehouseID,
		QuantityOnHand: decimal.Zero,
	}, nil
}

func (r *memSnapshotRepo) Upsert(_ context.Context, snapshot *entity.StockSnapshot) error {
	c := *snapshot
	r.s.snapshots[memKey{snapshot.ItemType, snapshot.ItemID, snapshot.WarehouseID}] = &c
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Append
// ──────────────────────────────────────────────────────────────────────────────

func TestAppend_FirstReceiptStartsFromZero(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)

	entry, err := uc.Append(context.Background(), ledger.AppendInput{
		ItemType:       entity.ItemTypeMaterial,
		ItemID:         1,
		WarehouseID:    10,
		Type:           entity.TxSupplierReceipt,
		QuantityChange: decimal.NewFromInt(500),
		Unit:           "m",
	})

	require.NoError(t, err)
	assert.True(t, entry.BeforeQty.IsZero())
	assert.True(t, decimal.NewFromInt(500).Equal(entry.AfterQty))
	assert.NotEmpty(t, entry.ID)

	snap := store.snapshots[memKey{entity.ItemTypeMaterial, 1, 10}]
	require.NotNil(t, snap, "the snapshot must be written in the same transaction")
	assert.True(t, decimal.NewFromInt(500).Equal(snap.QuantityOnHand))
	assert.Equal(t, "m", snap.Unit)
}

func TestAppend_ChainsBeforeAndAfter(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)
	ctx := context.Background()

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 1, WarehouseID: 10,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	sale, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 1, WarehouseID: 10,
		Type: entity.TxProductionUse, QuantityChange: decimal.NewFromInt(-200),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(sale.BeforeQty))
	assert.True(t, decimal.NewFromInt(300).Equal(sale.AfterQty))
}

func TestAppend_OversellRejectedAndNothingWritten(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)
	ctx := context.Background()

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeProduct, ItemID: 7, WarehouseID: 2,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeProduct, ItemID: 7, WarehouseID: 2,
		Type: entity.TxCustomerSale, QuantityChange: decimal.NewFromInt(-80),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	k := memKey{entity.ItemTypeProduct, 7, 2}
	assert.Len(t, store.entries[k], 1, "the rejected sale must not reach the ledger")
	assert.True(t, decimal.NewFromInt(50).Equal(store.snapshots[k].QuantityOnHand))
}

func TestAppend_ClampOnlyForManualAdjustment(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)
	ctx := context.Background()

	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 3, WarehouseID: 1,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// A sale may not request the clamp at all.
	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 3, WarehouseID: 1,
		Type: entity.TxCustomerSale, QuantityChange: decimal.NewFromInt(-80),
		ClampToZero: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// A corrective manual adjustment lands on zero.
	adj, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 3, WarehouseID: 1,
		Type: entity.TxManualAdjustment, QuantityChange: decimal.NewFromInt(-80),
		ClampToZero: true,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-50).Equal(adj.QuantityChange), "the recorded change is the applied one, not the requested one")
	assert.True(t, adj.AfterQty.IsZero())
}

func TestAppend_DesignerStashHasNoLedger(t *testing.T) {
	uc := ledger.NewAppendUseCase(newMemStore())

	_, err := uc.Append(context.Background(), ledger.AppendInput{
		ItemType: entity.ItemTypeDesignerMaterial, ItemID: 1, WarehouseID: 1,
		Type: entity.TxPurchase, QuantityChange: decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_ConcurrentWritesKeepChainConsistent(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Append(ctx, ledger.AppendInput{
				ItemType: entity.ItemTypeMaterial, ItemID: 5, WarehouseID: 1,
				Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(10),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	k := memKey{entity.ItemTypeMaterial, 5, 1}
	require.Len(t, store.entries[k], writers)
	assert.True(t, decimal.NewFromInt(writers*10).Equal(store.snapshots[k].QuantityOnHand))

	// Every entry's BeforeQty must equal some other entry's AfterQty (or zero):
	// the chain never branches even under concurrency.
	afterSeen := map[string]int{decimal.Zero.String(): 1}
	for _, e := range store.entries[k] {
		afterSeen[e.AfterQty.String()]++
	}
	for _, e := range store.entries[k] {
		assert.Contains(t, afterSeen, e.BeforeQty.String())
	}
}

func TestAppend_UnitCostBlendedIntoSnapshot(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)
	ctx := context.Background()

	cost1 := decimal.NewFromInt(10)
	_, err := uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 6, WarehouseID: 1,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(100),
		UnitCost: &cost1,
	})
	require.NoError(t, err)

	cost2 := decimal.NewFromInt(16)
	_, err = uc.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 6, WarehouseID: 1,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(50),
		UnitCost: &cost2,
	})
	require.NoError(t, err)

	snap := store.snapshots[memKey{entity.ItemTypeMaterial, 6, 1}]
	assert.True(t, decimal.NewFromInt(12).Equal(snap.PricePerUnit),
		"100@10 blended with 50@16 averages to 12")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveMaterial
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveMaterial_AppendsSupplierReceipt(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewAppendUseCase(store)

	err := uc.ReceiveMaterial(context.Background(), "user-1", dto.ReceiveMaterialRequest{
		MaterialID:      9,
		WarehouseID:     4,
		Quantity:        decimal.NewFromInt(120),
		Unit:            "kg",
		PurchaseOrderID: "PO-7781",
	})

	require.NoError(t, err)
	k := memKey{entity.ItemTypeMaterial, 9, 4}
	require.Len(t, store.entries[k], 1)
	e := store.entries[k][0]
	assert.Equal(t, entity.TxSupplierReceipt, e.Type)
	assert.Equal(t, entity.RefPurchaseOrder, e.ReferenceType)
	assert.Equal(t, "PO-7781", e.ReferenceID)
	assert.Equal(t, "user-1", e.CreatedBy)
}

func TestReceiveMaterial_NegativeQuantityRejected(t *testing.T) {
	uc := ledger.NewAppendUseCase(newMemStore())

	err := uc.ReceiveMaterial(context.Background(), "user-1", dto.ReceiveMaterialRequest{
		MaterialID:  9,
		WarehouseID: 4,
		Quantity:    decimal.NewFromInt(-5),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rebuild
// ──────────────────────────────────────────────────────────────────────────────

func TestRebuild_MatchingSnapshotNotRepaired(t *testing.T) {
	store := newMemStore()
	appendUC := ledger.NewAppendUseCase(store)
	rebuildUC := ledger.NewRebuildUseCase(store, testLogger())
	ctx := context.Background()

	_, err := appendUC.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 1, WarehouseID: 1,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	snap, repaired, err := rebuildUC.Rebuild(ctx, entity.ItemTypeMaterial, 1, 1)

	require.NoError(t, err)
	assert.False(t, repaired)
	assert.True(t, decimal.NewFromInt(300).Equal(snap.QuantityOnHand))
}

func TestRebuild_DriftedSnapshotRepaired(t *testing.T) {
	store := newMemStore()
	appendUC := ledger.NewAppendUseCase(store)
	rebuildUC := ledger.NewRebuildUseCase(store, testLogger())
	ctx := context.Background()

	_, err := appendUC.Append(ctx, ledger.AppendInput{
		ItemType: entity.ItemTypeMaterial, ItemID: 2, WarehouseID: 1,
		Type: entity.TxSupplierReceipt, QuantityChange: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	// Corrupt the snapshot behind the ledger's back.
	k := memKey{entity.ItemTypeMaterial, 2, 1}
	store.snapshots[k].QuantityOnHand = decimal.NewFromInt(999)

	snap, repaired, err := rebuildUC.Rebuild(ctx, entity.ItemTypeMaterial, 2, 1)

	require.NoError(t, err)
	assert.True(t, repaired)
	assert.True(t, decimal.NewFromInt(300).Equal(snap.QuantityOnHand))
	assert.True(t, decimal.NewFromInt(300).Equal(store.snapshots[k].QuantityOnHand))
}

func TestRebuild_UnknownKeyNotFound(t *testing.T) {
	rebuildUC := ledger.NewRebuildUseCase(newMemStore(), testLogger())

	_, _, err := rebuildUC.Rebuild(context.Background(), entity.ItemTypeMaterial, 42, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRebuild_DivergedChainSurfaced(t *testing.T) {
	store := newMemStore()
	rebuildUC := ledger.NewRebuildUseCase(store, testLogger())
	k := memKey{entity.ItemTypeProduct, 8, 3}
	store.entries[k] = []*entity.LedgerEntry{
		{
			ItemType: entity.ItemTypeProduct, ItemID: 8, WarehouseID: 3,
			BeforeQty:      decimal.NewFromInt(100), // first entry must start at zero
			QuantityChange: decimal.NewFromInt(10),
			AfterQty:       decimal.NewFromInt(110),
		},
	}

	_, _, err := rebuildUC.Rebuild(context.Background(), entity.ItemTypeProduct, 8, 3)

	assert.ErrorIs(t, err, domain.ErrLedgerDiverged)
}
