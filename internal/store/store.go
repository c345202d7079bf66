// Package store persists calculator snapshots between sessions.
//
// A snapshot is the raw text of every field, stored as one opaque JSON
// document. Absence of a snapshot is the normal first-run case and is
// reported through the ok result of Load, never as an error.
package store

import "context"

// DefaultStateKey identifies the calculator document when none is configured.
const DefaultStateKey = "3dPrinterCostCalculatorState"

// Global field identifiers used as keys of Snapshot.Global.
const (
	GlobalElectricityPrice = "electricity-price"
	GlobalHandlingCost     = "handling-cost"
	GlobalImplicitCost     = "implicit-cost"
)

// Snapshot is the persisted document of raw field values. A nil entry in
// Printers stands for a row that was never saved.
type Snapshot struct {
	Global   map[string]string `json:"global"`
	Printers []*Printer        `json:"printers"`
}

// Printer holds the raw field values of one row.
type Printer struct {
	Name string `json:"name"`
	P    string `json:"p"`
	L    string `json:"l"`
	T    string `json:"t"`
	W    string `json:"w"`
	M    string `json:"m"`
}

// Store saves and restores snapshots.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	Clear(ctx context.Context) error
}
