package replay

import (
	"bytes"
	"testing"

	"github.com/tkalonso/bookbuilder/internal/itch"
)

// frameFor wraps a MoldUDP64 header and the given length-prefixed messages
// into a frame padded out to MoldHeaderOffset with arbitrary link-layer
// bytes and carrying the accepted UDP destination port.
func frameFor(seq uint64, msgs ...itch.Event) []byte {
	var body []byte
	for _, m := range msgs {
		b := itchEncode(m)
		var prefix [2]byte
		prefix[0] = byte(len(b) >> 8)
		prefix[1] = byte(len(b))
		body = append(body, prefix[0], prefix[1])
		body = append(body, b...)
	}

	frame := make([]byte, 42+20+len(body))
	frame[36] = 0x67
	frame[37] = 0x6d // 26477 = 0x676D
	copy(frame[42+10:42+18], []byte{0, 0, 0, 0, 0, 0, 0, byte(seq)})
	frame[42+18] = byte(uint16(len(msgs)) >> 8)
	frame[42+19] = byte(uint16(len(msgs)))
	copy(frame[62:], body)
	return frame
}

func itchEncode(e itch.Event) []byte {
	return itch.Encode(e)
}

func addOrder(locate uint16, ref uint64, side itch.Side, price, shares uint32) itch.AddOrder {
	return itch.AddOrder{
		Type:        itch.MsgAddOrder,
		StockLocate: locate,
		Reference:   ref,
		Side:        side,
		Shares:      shares,
		Stock:       itch.PadStock("TEST"),
		Price:       price,
	}
}

func runFrames(t *testing.T, cutoff uint64, frames [][]byte) *Engine {
	t.Helper()
	eng := New(cutoff)
	src := newFakeSource(frames)
	if err := eng.Run(src); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return eng
}

func TestScenarioSingleAddOrder(t *testing.T) {
	f := frameFor(1, addOrder(7, 1, itch.SideBuy, 123400, 500))
	eng := runFrames(t, 1, [][]byte{f})

	var buf bytes.Buffer
	if err := eng.Books.Get(7).Render(&buf, 10); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "----- Sell -----\n----- Buy -----\n[0] 500 @ 12.3400\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestScenarioAddOrderPopulatesDirectory(t *testing.T) {
	f := frameFor(1, addOrder(7, 1, itch.SideBuy, 123400, 500))
	eng := runFrames(t, 1, [][]byte{f})

	locate, ok := eng.Directory.FindBySymbol("TEST")
	if !ok || locate != 7 {
		t.Fatalf("FindBySymbol(TEST) = %d,%v, want 7,true", locate, ok)
	}
}

func TestScenarioStockDirectoryAloneDoesNotPopulateDirectory(t *testing.T) {
	sd := itch.StockDirectory{StockLocate: 7, Stock: itch.PadStock("TEST")}
	eng := runFrames(t, 1, [][]byte{frameFor(1, sd)})

	if _, ok := eng.Directory.FindBySymbol("TEST"); ok {
		t.Fatal("a Stock Directory message alone should not populate the symbol directory")
	}
}

func TestScenarioCancelReducesBook(t *testing.T) {
	add := addOrder(7, 1, itch.SideBuy, 100, 500)
	cancel := itch.CancelOrder{StockLocate: 7, Reference: 1, CanceledShares: 200}
	eng := runFrames(t, 2, [][]byte{frameFor(1, add), frameFor(2, cancel)})

	if eng.Books.Get(7).Bids[100] != 300 {
		t.Fatalf("remaining = %d, want 300", eng.Books.Get(7).Bids[100])
	}
}

func TestScenarioExecuteFullyConsumesOrder(t *testing.T) {
	add := addOrder(7, 1, itch.SideSell, 100, 500)
	exec := itch.ExecutedOrder{StockLocate: 7, Reference: 1, ExecutedShares: 500, MatchNumber: 1}
	eng := runFrames(t, 2, [][]byte{frameFor(1, add), frameFor(2, exec)})

	if _, ok := eng.Books.Get(7).Asks[100]; ok {
		t.Fatal("price level should be gone once the only order is fully executed")
	}
	if _, ok := eng.Table.Get(7, 1); ok {
		t.Fatal("order should no longer be live in the table")
	}
}

func TestScenarioDeleteRemovesOrder(t *testing.T) {
	add := addOrder(7, 1, itch.SideBuy, 100, 500)
	del := itch.DeleteOrder{StockLocate: 7, Reference: 1}
	eng := runFrames(t, 2, [][]byte{frameFor(1, add), frameFor(2, del)})

	if _, ok := eng.Books.Get(7).Bids[100]; ok {
		t.Fatal("deleted order's price level should be gone")
	}
}

func TestScenarioReplaceMovesQuantityToNewPrice(t *testing.T) {
	add := addOrder(7, 1, itch.SideBuy, 100, 500)
	replace := itch.ReplaceOrder{StockLocate: 7, OriginalReference: 1, NewReference: 2, Price: 150, Shares: 600}
	eng := runFrames(t, 2, [][]byte{frameFor(1, add), frameFor(2, replace)})

	b := eng.Books.Get(7)
	if _, ok := b.Bids[100]; ok {
		t.Fatal("original price level should be gone after replace")
	}
	if b.Bids[150] != 600 {
		t.Fatalf("new price level = %d, want 600", b.Bids[150])
	}
	if _, ok := eng.Table.Get(7, 1); ok {
		t.Fatal("original reference should no longer be live")
	}
	if o, ok := eng.Table.Get(7, 2); !ok || o.Price != 150 || o.Quantity != 600 {
		t.Fatalf("new reference = %+v, ok=%v", o, ok)
	}
}

func TestScenarioCutoffIsInclusive(t *testing.T) {
	first := addOrder(7, 1, itch.SideBuy, 100, 500)
	second := addOrder(7, 2, itch.SideBuy, 200, 100)
	eng := runFrames(t, 1, [][]byte{frameFor(1, first), frameFor(2, second)})

	b := eng.Books.Get(7)
	if b.Bids[100] != 500 {
		t.Fatalf("sequence at the cutoff should be processed, got %d", b.Bids[100])
	}
	if _, ok := b.Bids[200]; ok {
		t.Fatal("sequence past the cutoff should not be processed")
	}
}

func TestScenarioUnrecognizedTypeCountsButDoesNotMutate(t *testing.T) {
	// A system event ('S') is outside this replay's recognized type set.
	unrecognized := []byte{'S', 0, 0, 0, 0}
	var prefix [2]byte
	prefix[0] = byte(len(unrecognized) >> 8)
	prefix[1] = byte(len(unrecognized))
	body := append(append([]byte{}, prefix[:]...), unrecognized...)

	frame := make([]byte, 62+len(body))
	frame[36], frame[37] = 0x67, 0x6d
	copy(frame[52:60], []byte{0, 0, 0, 0, 0, 0, 0, 1})
	frame[60], frame[61] = 0, 1
	copy(frame[62:], body)

	eng := New(1)
	if err := eng.Run(newFakeSource([][]byte{frame})); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eng.Stats.MessagesSkipped != 1 {
		t.Fatalf("MessagesSkipped = %d, want 1", eng.Stats.MessagesSkipped)
	}
	if eng.Stats.MessagesDecoded != 0 {
		t.Fatalf("MessagesDecoded = %d, want 0", eng.Stats.MessagesDecoded)
	}
}
