// Package calculator runs the edit pipeline of the cost sheet: a field
// change updates the sheet, the affected rows are recomputed and rendered,
// and the new state is persisted.
package calculator

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Simplici0/printcost/internal/format"
	"github.com/Simplici0/printcost/internal/pricing"
	"github.com/Simplici0/printcost/internal/sheet"
	"github.com/Simplici0/printcost/internal/store"
)

// Row is one rendered printer row.
type Row struct {
	Index   int
	Printer store.Printer
	Result  pricing.Result
	Display string
}

// Calculator owns the sheet and serializes edits to it.
type Calculator struct {
	mu       sync.Mutex
	units    int
	sheet    *sheet.Sheet
	rows     []Row
	store    store.Store
	currency format.Currency
	logger   *zap.Logger
}

// New returns a calculator over a default sheet of units rows. Call Load to
// restore a previous session.
func New(st store.Store, currency format.Currency, units int, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Calculator{
		units:    units,
		sheet:    sheet.New(units),
		store:    st,
		currency: currency,
		logger:   logger.Named("calculator"),
	}
	c.recomputeAll()
	return c
}

// Load restores the last saved snapshot. restored is false on a first run.
// On error the calculator keeps its current state.
func (c *Calculator) Load(ctx context.Context) (restored bool, err error) {
	snap, ok, err := c.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheet = sheet.FromSnapshot(snap, c.units)
	c.recomputeAll()
	c.logger.Debug("restored snapshot", zap.Int("rows", len(snap.Printers)))
	return true, nil
}

// OnGlobalChanged applies a global field edit. Every row depends on the
// globals, so all rows are recomputed.
func (c *Calculator) OnGlobalChanged(ctx context.Context, key, value string) error {
	return c.OnGlobalsChanged(ctx, map[string]string{key: value})
}

// OnGlobalsChanged applies several global edits, then recomputes and
// persists once. No edit is applied when any key is unknown.
func (c *Calculator) OnGlobalsChanged(ctx context.Context, values map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sheet.SetGlobals(values); err != nil {
		return err
	}
	c.recomputeAll()
	c.persist(ctx)
	return nil
}

// OnUnitChanged applies an edit to one field of row index and returns the
// recomputed row.
func (c *Calculator) OnUnitChanged(ctx context.Context, index int, field, value string) (Row, error) {
	return c.OnUnitFieldsChanged(ctx, index, map[string]string{field: value})
}

// OnUnitFieldsChanged applies several field edits to row index, then
// recomputes and persists once.
func (c *Calculator) OnUnitFieldsChanged(ctx context.Context, index int, values map[string]string) (Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sheet.SetUnitFields(index, values); err != nil {
		return Row{}, err
	}
	c.recompute(index)
	c.persist(ctx)
	return c.rows[index], nil
}

// Reset deletes the saved snapshot and restores the default sheet. The
// defaults are not persisted until the next edit.
func (c *Calculator) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	c.sheet = sheet.New(c.units)
	c.recomputeAll()
	c.logger.Info("reset to defaults")
	return nil
}

// Rows returns the rendered rows in position order.
func (c *Calculator) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Row(nil), c.rows...)
}

// Globals returns the raw global values keyed by field identifier.
func (c *Calculator) Globals() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(sheet.GlobalKeys))
	for _, key := range sheet.GlobalKeys {
		out[key] = c.sheet.Global(key)
	}
	return out
}

func (c *Calculator) recomputeAll() {
	c.rows = make([]Row, c.sheet.Len())
	for i := range c.rows {
		c.recompute(i)
	}
}

func (c *Calculator) recompute(i int) {
	result := pricing.Calculate(c.sheet.Unit(i), c.sheet.Globals())
	c.rows[i] = Row{
		Index:   i,
		Printer: c.sheet.Printer(i),
		Result:  result,
		Display: c.currency.Result(result),
	}
}

// persist is best effort: a failed save is logged and the edit stands.
func (c *Calculator) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.sheet.Snapshot()); err != nil {
		c.logger.Warn("failed to persist snapshot", zap.Error(err))
	}
}
