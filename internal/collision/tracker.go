// Package collision tracks table column names and their 64-bit IDs while a
// table is being encoded.
package collision

import (
	"fmt"

	"github.com/arloliu/gpfield/errs"
)

// Tracker records column names with their hash IDs in insertion order.
//
// Two distinct names that hash to the same ID are not an error: the tracker
// raises a flag and the encoder stores the names payload so the columns can
// still be told apart on decode. The same name twice is an error.
type Tracker struct {
	byID         map[uint64]string
	names        []string
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID:  make(map[uint64]string),
		names: make([]string, 0),
	}
}

// Track records name under id.
//
// Returns errs.ErrInvalidColumn when name is empty or already tracked.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return fmt.Errorf("%w: empty column name", errs.ErrInvalidColumn)
	}

	if existing, ok := t.byID[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: duplicate column %q", errs.ErrInvalidColumn, name)
		}
		t.hasCollision = true
	}
	for _, n := range t.names {
		if n == name {
			return fmt.Errorf("%w: duplicate column %q", errs.ErrInvalidColumn, name)
		}
	}

	t.byID[id] = name
	t.names = append(t.names, name)

	return nil
}

// HasCollision reports whether two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker and keeps its allocations.
func (t *Tracker) Reset() {
	clear(t.byID)
	t.names = t.names[:0]
	t.hasCollision = false
}
