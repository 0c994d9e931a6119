package orderbook

import (
	"fmt"
	"io"
	"sort"

	"github.com/tkalonso/bookbuilder/internal/itch"
)

// Book is the price-aggregated view of one symbol's resting liquidity: for
// each side, price (ITCH 4-implied-decimal fixed point) maps to the total
// quantity resting at that price (B1). A price with zero quantity is never
// stored (B1) — it is deleted, not kept at zero.
type Book struct {
	Locate uint16
	Bids   map[uint32]uint32
	Asks   map[uint32]uint32
}

// NewBook returns an empty book for a locate.
func NewBook(locate uint16) *Book {
	return &Book{
		Locate: locate,
		Bids:   make(map[uint32]uint32),
		Asks:   make(map[uint32]uint32),
	}
}

func (b *Book) side(s itch.Side) map[uint32]uint32 {
	if s == itch.SideBuy {
		return b.Bids
	}
	return b.Asks
}

// Add credits qty to the aggregate at price on the given side.
func (b *Book) Add(s itch.Side, price, qty uint32) {
	if qty == 0 {
		return
	}
	b.side(s)[price] += qty
}

// Remove debits qty from the aggregate at price on the given side, deleting
// the price level entirely rather than leaving a zero entry once the debit
// consumes everything resting there.
func (b *Book) Remove(s itch.Side, price, qty uint32) {
	if qty == 0 {
		return
	}
	m := b.side(s)
	cur, ok := m[price]
	if !ok {
		return
	}
	if qty >= cur {
		delete(m, price)
		return
	}
	m[price] = cur - qty
}

type level struct {
	price uint32
	qty   uint32
}

func sortedLevels(m map[uint32]uint32, ascending bool) []level {
	levels := make([]level, 0, len(m))
	for p, q := range m {
		levels = append(levels, level{price: p, qty: q})
	}
	if ascending {
		sort.Slice(levels, func(i, j int) bool { return levels[i].price < levels[j].price })
	} else {
		sort.Slice(levels, func(i, j int) bool { return levels[i].price > levels[j].price })
	}
	return levels
}

func formatPrice(p uint32) string {
	return fmt.Sprintf("%.4f", float64(p)/10000)
}

// Render writes the top-of-book ladder for this symbol to w: the Sell side
// from worst to best (ending closest to the spread), then the Buy side
// from best to worst, each truncated to depth price levels, indices
// counting outward from the spread starting at 0.
func (b *Book) Render(w io.Writer, depth int) error {
	if _, err := fmt.Fprintln(w, "----- Sell -----"); err != nil {
		return err
	}
	asks := sortedLevels(b.Asks, true)
	if len(asks) > depth {
		asks = asks[:depth]
	}
	for i := len(asks) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintf(w, "[%d] %d @ %s\n", i, asks[i].qty, formatPrice(asks[i].price)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "----- Buy -----"); err != nil {
		return err
	}
	bids := sortedLevels(b.Bids, false)
	if len(bids) > depth {
		bids = bids[:depth]
	}
	for i, lvl := range bids {
		if _, err := fmt.Fprintf(w, "[%d] %d @ %s\n", i, lvl.qty, formatPrice(lvl.price)); err != nil {
			return err
		}
	}
	return nil
}

// Books is the collection of per-locate books built up over a replay run.
type Books struct {
	byLocate map[uint16]*Book
}

// NewBooks returns an empty collection.
func NewBooks() *Books {
	return &Books{byLocate: make(map[uint16]*Book)}
}

// Get returns the book for locate, creating it empty if this is the first
// event seen for that symbol.
func (bs *Books) Get(locate uint16) *Book {
	b, ok := bs.byLocate[locate]
	if !ok {
		b = NewBook(locate)
		bs.byLocate[locate] = b
	}
	return b
}

// Lookup returns the book for locate without creating one.
func (bs *Books) Lookup(locate uint16) (*Book, bool) {
	b, ok := bs.byLocate[locate]
	return b, ok
}
