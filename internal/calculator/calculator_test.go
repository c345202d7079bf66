package calculator

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Simplici0/printcost/internal/format"
	"github.com/Simplici0/printcost/internal/sheet"
	"github.com/Simplici0/printcost/internal/store"
)

// failingStore saves nothing and reports errors on every call.
type failingStore struct{}

var errBroken = errors.New("broken store")

func (failingStore) Save(context.Context, store.Snapshot) error { return errBroken }
func (failingStore) Load(context.Context) (store.Snapshot, bool, error) {
	return store.Snapshot{}, false, errBroken
}
func (failingStore) Clear(context.Context) error { return errBroken }

// countingStore records how many snapshots were saved.
type countingStore struct {
	*store.Memory
	saves int
}

func (s *countingStore) Save(ctx context.Context, snap store.Snapshot) error {
	s.saves++
	return s.Memory.Save(ctx, snap)
}

func newCalculator(t *testing.T, st store.Store) *Calculator {
	t.Helper()
	return New(st, format.NewCurrency(""), 3, zap.NewNop())
}

func TestNewRendersDefaults(t *testing.T) {
	c := newCalculator(t, store.NewMemory())

	rows := c.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Index != i || row.Display != "NT$ 193.44" {
			t.Fatalf("row %d = %+v", i, row)
		}
	}
}

func TestOnUnitChangedRecomputesAndPersists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := newCalculator(t, st)

	row, err := c.OnUnitChanged(ctx, 1, sheet.FieldLifetime, "0")
	if err != nil {
		t.Fatalf("OnUnitChanged: %v", err)
	}
	if row.Display != format.Placeholder || row.Result.Defined {
		t.Fatalf("expected undefined row, got %+v", row)
	}
	if got := c.Rows()[0].Display; got != "NT$ 193.44" {
		t.Fatalf("unrelated row changed: %q", got)
	}

	snap, ok, err := st.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("expected persisted snapshot, got ok=%v err=%v", ok, err)
	}
	if snap.Printers[1].L != "0" {
		t.Fatalf("persisted lifetime = %q, want %q", snap.Printers[1].L, "0")
	}
}

func TestOnGlobalChangedRecomputesAllRows(t *testing.T) {
	ctx := context.Background()
	c := newCalculator(t, store.NewMemory())

	if err := c.OnGlobalChanged(ctx, store.GlobalImplicitCost, "0"); err != nil {
		t.Fatalf("OnGlobalChanged: %v", err)
	}
	for i, row := range c.Rows() {
		if row.Display != "NT$ 175.86" {
			t.Fatalf("row %d display = %q, want %q", i, row.Display, "NT$ 175.86")
		}
	}
	if got := c.Globals()[store.GlobalImplicitCost]; got != "0" {
		t.Fatalf("implicit cost = %q", got)
	}
}

func TestEditsRejectUnknownTargets(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := newCalculator(t, st)

	if err := c.OnGlobalChanged(ctx, "bogus", "1"); !errors.Is(err, sheet.ErrUnknownField) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.OnUnitChanged(ctx, 9, sheet.FieldName, "x"); !errors.Is(err, sheet.ErrOutOfRange) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := st.Load(ctx); ok {
		t.Fatalf("rejected edits must not be persisted")
	}
}

func TestBatchEditsPersistOnce(t *testing.T) {
	ctx := context.Background()
	st := &countingStore{Memory: store.NewMemory()}
	c := newCalculator(t, st)

	row, err := c.OnUnitFieldsChanged(ctx, 1, map[string]string{
		sheet.FieldName:       "Voron",
		sheet.FieldPrice:      "25000",
		sheet.FieldLifetime:   "0",
		sheet.FieldTime:       "0d1h30m",
		sheet.FieldPower:      "300",
		sheet.FieldConsumable: "120",
	})
	if err != nil {
		t.Fatalf("OnUnitFieldsChanged: %v", err)
	}
	if row.Printer.Name != "Voron" || row.Display != format.Placeholder {
		t.Fatalf("unexpected row %+v", row)
	}
	if st.saves != 1 {
		t.Fatalf("saves after row batch = %d, want 1", st.saves)
	}

	err = c.OnGlobalsChanged(ctx, map[string]string{
		store.GlobalElectricityPrice: "3.5",
		store.GlobalHandlingCost:     "50",
		store.GlobalImplicitCost:     "0",
	})
	if err != nil {
		t.Fatalf("OnGlobalsChanged: %v", err)
	}
	if st.saves != 2 {
		t.Fatalf("saves after globals batch = %d, want 2", st.saves)
	}
	if got := c.Rows()[0].Display; got != "NT$ 175.86" {
		t.Fatalf("row 0 display = %q", got)
	}

	if _, err := c.OnUnitFieldsChanged(ctx, 0, map[string]string{sheet.FieldName: "x", "bogus": "1"}); !errors.Is(err, sheet.ErrUnknownField) {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.saves != 2 || c.Rows()[0].Printer.Name != "Printer 1" {
		t.Fatalf("rejected batch was applied: saves=%d row=%+v", st.saves, c.Rows()[0])
	}
}

func TestLoadRestoresPreviousSession(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	first := newCalculator(t, st)
	if _, err := first.OnUnitChanged(ctx, 2, sheet.FieldName, "Voron"); err != nil {
		t.Fatalf("OnUnitChanged: %v", err)
	}

	second := newCalculator(t, st)
	restored, err := second.Load(ctx)
	if err != nil || !restored {
		t.Fatalf("Load = (%v, %v), want (true, nil)", restored, err)
	}
	if got := second.Rows()[2].Printer.Name; got != "Voron" {
		t.Fatalf("restored name = %q", got)
	}
}

func TestLoadWithoutSnapshotKeepsDefaults(t *testing.T) {
	c := newCalculator(t, store.NewMemory())

	restored, err := c.Load(context.Background())
	if err != nil || restored {
		t.Fatalf("Load = (%v, %v), want (false, nil)", restored, err)
	}
	if c.Rows()[0].Printer.Name != "Printer 1" {
		t.Fatalf("defaults lost: %+v", c.Rows()[0])
	}
}

func TestResetClearsStoreAndRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := newCalculator(t, st)

	if _, err := c.OnUnitChanged(ctx, 0, sheet.FieldName, "Custom"); err != nil {
		t.Fatalf("OnUnitChanged: %v", err)
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if _, ok, _ := st.Load(ctx); ok {
		t.Fatalf("expected snapshot to be cleared")
	}
	if got := c.Rows()[0].Printer.Name; got != "Printer 1" {
		t.Fatalf("name after reset = %q", got)
	}
}

func TestPersistFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(failingStore{}, format.NewCurrency(""), 2, zap.New(core))

	if _, err := c.OnUnitChanged(context.Background(), 0, sheet.FieldTime, "3h"); err != nil {
		t.Fatalf("OnUnitChanged should succeed despite store failure: %v", err)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if _, err := c.Load(context.Background()); !errors.Is(err, errBroken) {
		t.Fatalf("Load err = %v, want %v", err, errBroken)
	}
	if err := c.Reset(context.Background()); !errors.Is(err, errBroken) {
		t.Fatalf("Reset err = %v, want %v", err, errBroken)
	}
}
