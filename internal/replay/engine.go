// Package replay drives a capture source through the wire decoder into the
// order table and book aggregator, up to a sequence-number cutoff.
package replay

import (
	"fmt"
	"io"

	"github.com/tkalonso/bookbuilder/internal/capture"
	"github.com/tkalonso/bookbuilder/internal/itch"
	"github.com/tkalonso/bookbuilder/internal/orderbook"
	"github.com/tkalonso/bookbuilder/internal/symbol"
)

// FrameSource yields link-layer frames in capture order, returning io.EOF
// once exhausted. *capture.Source satisfies this; tests substitute a fake.
type FrameSource interface {
	Next() ([]byte, error)
}

// Stats tallies what a run saw, surfaced via --stats.
type Stats struct {
	Frames          int
	PacketsAccepted int
	MessagesDecoded int
	MessagesSkipped int
}

// DecodeError wraps a message-decode failure with the MoldUDP64 sequence
// number of the packet it occurred in, so a fatal error can be reported
// with enough context to find it in the trace.
type DecodeError struct {
	Sequence uint64
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("replay: decode error at sequence %d: %v", e.Sequence, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Engine accumulates order-table and book state across a replay run.
type Engine struct {
	Cutoff    uint64
	Directory *symbol.Directory
	Table     *orderbook.Table
	Books     *orderbook.Books
	Stats     Stats
}

// New returns an Engine that stops at the first packet whose sequence
// number exceeds cutoff, without processing that packet (cutoff itself is
// still processed).
func New(cutoff uint64) *Engine {
	return &Engine{
		Cutoff:    cutoff,
		Directory: symbol.NewDirectory(),
		Table:     orderbook.NewTable(),
		Books:     orderbook.NewBooks(),
	}
}

// Run replays every frame from src, in order, until the capture is
// exhausted or a packet's sequence number exceeds the cutoff. A fatal
// *DecodeError halts the run; individual unrecognized message types do
// not.
func (e *Engine) Run(src FrameSource) error {
	for {
		frame, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		e.Stats.Frames++

		if !capture.Accepted(frame) {
			continue
		}

		hdr, body, err := capture.DecodeMoldHeader(frame)
		if err != nil {
			continue
		}
		if hdr.SequenceNumber > e.Cutoff {
			return nil
		}
		e.Stats.PacketsAccepted++

		walkErr := capture.Messages(body, hdr.MessageCount, func(payload []byte) error {
			ev, decErr := itch.Decode(payload)
			if decErr != nil {
				return decErr
			}
			if ev == nil {
				e.Stats.MessagesSkipped++
				return nil
			}
			e.Stats.MessagesDecoded++
			e.dispatch(ev)
			return nil
		})
		if walkErr != nil {
			return &DecodeError{Sequence: hdr.SequenceNumber, Err: walkErr}
		}
	}
}

// dispatch applies one decoded event to the order table, book aggregator,
// and symbol directory. Events referencing an order the table has no record
// of are dropped silently: the upstream feed may have started mid-stream.
// StockDirectory and any other decoded type not listed below are ignored
// here; they still counted toward MessagesDecoded.
func (e *Engine) dispatch(ev itch.Event) {
	switch m := ev.(type) {
	case itch.AddOrder:
		e.Directory.Record(m.StockLocate, m.Stock)
		if err := e.Table.Add(orderbook.Order{
			Reference: m.Reference,
			Locate:    m.StockLocate,
			Side:      m.Side,
			Price:     m.Price,
			Quantity:  m.Shares,
		}); err != nil {
			return
		}
		e.Books.Get(m.StockLocate).Add(m.Side, m.Price, m.Shares)

	case itch.ExecutedOrder:
		side, price, removed, err := e.Table.Reduce(m.StockLocate, m.Reference, m.ExecutedShares)
		if err != nil {
			return
		}
		e.Books.Get(m.StockLocate).Remove(side, price, removed)

	case itch.ExecutedWithPriceOrder:
		side, price, removed, err := e.Table.Reduce(m.StockLocate, m.Reference, m.ExecutedShares)
		if err != nil {
			return
		}
		e.Books.Get(m.StockLocate).Remove(side, price, removed)

	case itch.CancelOrder:
		side, price, removed, err := e.Table.Reduce(m.StockLocate, m.Reference, m.CanceledShares)
		if err != nil {
			return
		}
		e.Books.Get(m.StockLocate).Remove(side, price, removed)

	case itch.DeleteOrder:
		o, err := e.Table.Delete(m.StockLocate, m.Reference)
		if err != nil {
			return
		}
		e.Books.Get(m.StockLocate).Remove(o.Side, o.Price, o.Quantity)

	case itch.ReplaceOrder:
		original, err := e.Table.Replace(m.StockLocate, m.OriginalReference, m.NewReference, m.Price, m.Shares)
		if err != nil {
			return
		}
		book := e.Books.Get(m.StockLocate)
		book.Remove(original.Side, original.Price, original.Quantity)
		book.Add(original.Side, m.Price, m.Shares)
	}
}
