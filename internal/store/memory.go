package store

import (
	"context"
	"sync"
)

// Memory keeps a single snapshot in process memory.
type Memory struct {
	mu    sync.Mutex
	snap  Snapshot
	saved bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = clone(snap)
	m.saved = true
	return nil
}

func (m *Memory) Load(_ context.Context) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return Snapshot{}, false, nil
	}
	return clone(m.snap), true, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = Snapshot{}
	m.saved = false
	return nil
}

func clone(snap Snapshot) Snapshot {
	var out Snapshot
	if snap.Printers != nil {
		out.Printers = make([]*Printer, len(snap.Printers))
		for i, p := range snap.Printers {
			if p != nil {
				cp := *p
				out.Printers[i] = &cp
			}
		}
	}
	if snap.Global != nil {
		out.Global = make(map[string]string, len(snap.Global))
		for k, v := range snap.Global {
			out.Global[k] = v
		}
	}
	return out
}
