// Package sheet holds the raw field values of the calculator: the shared
// globals and a fixed number of printer rows addressed by position.
package sheet

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/Simplici0/printcost/internal/duration"
	"github.com/Simplici0/printcost/internal/numparse"
	"github.com/Simplici0/printcost/internal/pricing"
	"github.com/Simplici0/printcost/internal/store"
)

// DefaultUnits is the number of printer rows in a new sheet.
const DefaultUnits = 20

// Row field identifiers.
const (
	FieldName       = "name"
	FieldPrice      = "p"
	FieldLifetime   = "l"
	FieldTime       = "t"
	FieldPower      = "w"
	FieldConsumable = "m"
)

const defaultPrinterName = "Printer"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrOutOfRange   = errors.New("row index out of range")
)

// GlobalKeys lists the global fields in display order.
var GlobalKeys = []string{
	store.GlobalElectricityPrice,
	store.GlobalHandlingCost,
	store.GlobalImplicitCost,
}

// RowFields lists the row fields in display order.
var RowFields = []string{FieldName, FieldPrice, FieldLifetime, FieldTime, FieldPower, FieldConsumable}

// DefaultGlobals returns the global values of a fresh sheet.
func DefaultGlobals() map[string]string {
	return map[string]string{
		store.GlobalElectricityPrice: "3.5",
		store.GlobalHandlingCost:     "50",
		store.GlobalImplicitCost:     "10",
	}
}

// DefaultPrinter returns the default row for position index.
func DefaultPrinter(index int) store.Printer {
	return store.Printer{
		Name: defaultPrinterName + " " + strconv.Itoa(index+1),
		P:    "25000",
		L:    "8760",
		T:    "0d1h30m",
		W:    "300",
		M:    "120",
	}
}

// Sheet is the in-memory state of the calculator.
type Sheet struct {
	globals  map[string]string
	printers []store.Printer
}

// New returns a sheet with units default rows.
func New(units int) *Sheet {
	if units <= 0 {
		units = DefaultUnits
	}
	s := &Sheet{
		globals:  DefaultGlobals(),
		printers: make([]store.Printer, units),
	}
	for i := range s.printers {
		s.printers[i] = DefaultPrinter(i)
	}
	return s
}

// FromSnapshot restores a sheet of units rows from snap. Rows that are
// missing or null in the snapshot get their defaults, extra rows are
// dropped, and only known global keys are applied.
func FromSnapshot(snap store.Snapshot, units int) *Sheet {
	s := New(units)
	for _, key := range GlobalKeys {
		if v, ok := snap.Global[key]; ok {
			s.globals[key] = v
		}
	}
	for i := range s.printers {
		if i < len(snap.Printers) && snap.Printers[i] != nil {
			s.printers[i] = *snap.Printers[i]
		}
	}
	return s
}

// Len returns the number of rows.
func (s *Sheet) Len() int {
	return len(s.printers)
}

// Global returns the raw value of a global field.
func (s *Sheet) Global(key string) string {
	return s.globals[key]
}

// Printer returns the raw values of row i.
func (s *Sheet) Printer(i int) store.Printer {
	return s.printers[i]
}

// SetGlobal replaces the raw value of a global field.
func (s *Sheet) SetGlobal(key, value string) error {
	if !isGlobalKey(key) {
		return fmt.Errorf("global %q: %w", key, ErrUnknownField)
	}
	s.globals[key] = value
	return nil
}

// SetUnitField replaces the raw value of one field of row i.
func (s *Sheet) SetUnitField(i int, field, value string) error {
	if i < 0 || i >= len(s.printers) {
		return fmt.Errorf("row %d of %d: %w", i, len(s.printers), ErrOutOfRange)
	}

	p := &s.printers[i]
	switch field {
	case FieldName:
		p.Name = value
	case FieldPrice:
		p.P = value
	case FieldLifetime:
		p.L = value
	case FieldTime:
		p.T = value
	case FieldPower:
		p.W = value
	case FieldConsumable:
		p.M = value
	default:
		return fmt.Errorf("row field %q: %w", field, ErrUnknownField)
	}
	return nil
}

// SetGlobals replaces several global fields at once. Nothing is changed
// when any key is unknown.
func (s *Sheet) SetGlobals(values map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if !isGlobalKey(key) {
			return fmt.Errorf("global %q: %w", key, ErrUnknownField)
		}
	}
	for key, value := range values {
		s.globals[key] = value
	}
	return nil
}

// SetUnitFields replaces several fields of row i at once. Nothing is
// changed when the row or any field is unknown.
func (s *Sheet) SetUnitFields(i int, values map[string]string) error {
	if i < 0 || i >= len(s.printers) {
		return fmt.Errorf("row %d of %d: %w", i, len(s.printers), ErrOutOfRange)
	}
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if !slices.Contains(RowFields, field) {
			return fmt.Errorf("row field %q: %w", field, ErrUnknownField)
		}
	}
	for field, value := range values {
		if err := s.SetUnitField(i, field, value); err != nil {
			return err
		}
	}
	return nil
}

// Globals gathers the shared pricing parameters, reading unparseable
// values as 0.
func (s *Sheet) Globals() pricing.GlobalInput {
	return pricing.GlobalInput{
		ElectricityPricePerKWh:  numparse.Float(s.globals[store.GlobalElectricityPrice]),
		HandlingCost:            numparse.Float(s.globals[store.GlobalHandlingCost]),
		ImplicitOverheadPercent: numparse.Float(s.globals[store.GlobalImplicitCost]),
	}
}

// Unit gathers the pricing parameters of row i.
func (s *Sheet) Unit(i int) pricing.UnitInput {
	p := s.printers[i]
	return pricing.UnitInput{
		PurchasePrice:         numparse.Float(p.P),
		ExpectedLifetimeHours: numparse.Float(p.L),
		UsageHours:            duration.ParseHours(p.T),
		AveragePowerWatts:     numparse.Float(p.W),
		ConsumableCost:        numparse.Float(p.M),
	}
}

// Snapshot copies the raw values into a persistable document.
func (s *Sheet) Snapshot() store.Snapshot {
	snap := store.Snapshot{
		Global:   make(map[string]string, len(s.globals)),
		Printers: make([]*store.Printer, len(s.printers)),
	}
	for i := range s.printers {
		p := s.printers[i]
		snap.Printers[i] = &p
	}
	for k, v := range s.globals {
		snap.Global[k] = v
	}
	return snap
}

func isGlobalKey(key string) bool {
	return slices.Contains(GlobalKeys, key)
}
