// Package orderbook reconstructs per-symbol limit order books from a
// replayed stream of ITCH order events: a reference-keyed order table plus
// a price-aggregated book for each stock_locate.
package orderbook

import (
	"fmt"

	"github.com/tkalonso/bookbuilder/internal/itch"
)

// Order is a single resting limit order, keyed within its locate bucket by
// Reference. Quantity is always > 0 for an order stored in a Table (O1) —
// an order that reaches zero remaining quantity is removed, never kept at
// zero.
type Order struct {
	Reference uint64
	Locate    uint16
	Side      itch.Side
	Price     uint32
	Quantity  uint32
}

type orderKey struct {
	locate    uint16
	reference uint64
}

// MissingReferenceError is returned when an event refers to an order
// reference the table has no record of (e.g. a cancel for an order that was
// never added, or was already deleted). Per the replay engine's error
// policy this is non-fatal: the caller drops the event and continues.
type MissingReferenceError struct {
	Locate    uint16
	Reference uint64
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("orderbook: no order %d in locate %d", e.Reference, e.Locate)
}

// DuplicateReferenceError is returned when an Add would collide with a
// reference already live in the same locate bucket (O2).
type DuplicateReferenceError struct {
	Locate    uint16
	Reference uint64
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("orderbook: reference %d already live in locate %d", e.Reference, e.Locate)
}

// Table is the reference-keyed order table: one bucket of live orders per
// stock_locate, with references unique within a bucket (O2) but free to
// repeat across buckets.
type Table struct {
	orders map[orderKey]*Order
}

// NewTable returns an empty order table.
func NewTable() *Table {
	return &Table{orders: make(map[orderKey]*Order)}
}

// Add inserts a new live order. It fails with *DuplicateReferenceError if
// the (locate, reference) pair is already live.
func (t *Table) Add(o Order) error {
	k := orderKey{o.Locate, o.Reference}
	if _, exists := t.orders[k]; exists {
		return &DuplicateReferenceError{Locate: o.Locate, Reference: o.Reference}
	}
	cp := o
	t.orders[k] = &cp
	return nil
}

// Get returns the live order for (locate, reference), if any.
func (t *Table) Get(locate uint16, reference uint64) (*Order, bool) {
	o, ok := t.orders[orderKey{locate, reference}]
	return o, ok
}

// Delete removes an order entirely (Order Delete, or the original side of
// an Order Replace). It returns the removed order so the caller can
// reconcile the book by its full remaining quantity.
func (t *Table) Delete(locate uint16, reference uint64) (*Order, error) {
	k := orderKey{locate, reference}
	o, ok := t.orders[k]
	if !ok {
		return nil, &MissingReferenceError{Locate: locate, Reference: reference}
	}
	delete(t.orders, k)
	return o, nil
}

// Reduce removes shares from a live order (Order Executed, Order Executed
// With Price, and Order Cancel all reduce this way). It returns the order's
// side and price (for book reconciliation) plus the quantity actually
// removed from the book: the requested amount, or the order's full
// remaining quantity when shares meets or exceeds it. In that case — the
// detail a naive implementation gets wrong — the order is deleted from the
// table, not left at zero.
func (t *Table) Reduce(locate uint16, reference uint64, shares uint32) (side itch.Side, price uint32, removed uint32, err error) {
	k := orderKey{locate, reference}
	o, ok := t.orders[k]
	if !ok {
		return 0, 0, 0, &MissingReferenceError{Locate: locate, Reference: reference}
	}
	if shares >= o.Quantity {
		removed = o.Quantity
		delete(t.orders, k)
	} else {
		o.Quantity -= shares
		removed = shares
	}
	return o.Side, o.Price, removed, nil
}

// Replace atomically deletes the original order and inserts a new one at a
// new reference, price and quantity, carrying forward the original's side
// and locate (an Order Replace message carries no side of its own). It
// returns the original order (for removing its resting quantity from the
// book) so the caller can add the new quantity at the new price.
func (t *Table) Replace(locate uint16, originalReference, newReference uint64, price, shares uint32) (original *Order, err error) {
	if newReference != originalReference {
		if _, exists := t.Get(locate, newReference); exists {
			return nil, &DuplicateReferenceError{Locate: locate, Reference: newReference}
		}
	}
	original, err = t.Delete(locate, originalReference)
	if err != nil {
		return nil, err
	}
	if addErr := t.Add(Order{
		Reference: newReference,
		Locate:    locate,
		Side:      original.Side,
		Price:     price,
		Quantity:  shares,
	}); addErr != nil {
		return original, addErr
	}
	return original, nil
}
