// Package itch decodes and encodes the subset of NASDAQ TotalView-ITCH 5.0
// message bodies this replay engine understands. All multi-byte integers on
// the wire are big-endian; character fields are ASCII.
package itch

// MsgType is the one-byte ITCH message type tag.
type MsgType byte

const (
	MsgAddOrder               MsgType = 'A'
	MsgAddOrderMPID           MsgType = 'F'
	MsgOrderExecuted          MsgType = 'E'
	MsgOrderExecutedWithPrice MsgType = 'C'
	MsgOrderCancel            MsgType = 'X'
	MsgOrderDelete            MsgType = 'D'
	MsgOrderReplace           MsgType = 'U'
	MsgStockDirectory         MsgType = 'R'
)

// Side is the buy/sell indicator carried on Add Order events.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
)

// Event is implemented by every decoded in-scope ITCH message body.
type Event interface {
	// MessageType reports the wire type byte the event was decoded from.
	MessageType() MsgType
}

// AddOrder covers both the plain (type 'A') and attributed (type 'F') forms;
// Attribution is only meaningful when Type is MsgAddOrderMPID.
type AddOrder struct {
	Type           MsgType
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
	Reference      uint64
	Side           Side
	Shares         uint32
	Stock          [8]byte
	Price          uint32
	Attribution    [4]byte
}

func (m AddOrder) MessageType() MsgType { return m.Type }

// ExecutedOrder is an Order Executed message (type 'E').
type ExecutedOrder struct {
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
	Reference      uint64
	ExecutedShares uint32
	MatchNumber    uint64
}

func (ExecutedOrder) MessageType() MsgType { return MsgOrderExecuted }

// ExecutedWithPriceOrder is an Order Executed With Price message (type 'C').
type ExecutedWithPriceOrder struct {
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
	Reference      uint64
	ExecutedShares uint32
	MatchNumber    uint64
	Printable      bool
	Price          uint32
}

func (ExecutedWithPriceOrder) MessageType() MsgType { return MsgOrderExecutedWithPrice }

// CancelOrder is an Order Cancel message (type 'X').
type CancelOrder struct {
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
	Reference      uint64
	CanceledShares uint32
}

func (CancelOrder) MessageType() MsgType { return MsgOrderCancel }

// DeleteOrder is an Order Delete message (type 'D').
type DeleteOrder struct {
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
	Reference      uint64
}

func (DeleteOrder) MessageType() MsgType { return MsgOrderDelete }

// ReplaceOrder is an Order Replace message (type 'U'). It carries no side;
// the order table recovers the side from the original order it replaces.
type ReplaceOrder struct {
	StockLocate       uint16
	TrackingNumber    uint16
	Timestamp         uint64
	OriginalReference uint64
	NewReference      uint64
	Price             uint32
	Shares            uint32
}

func (ReplaceOrder) MessageType() MsgType { return MsgOrderReplace }

// StockDirectory is a Stock Directory message (type 'R'). The order table
// never consumes it; it is decoded in full for completeness and for any
// future extension of the Symbol Directory.
type StockDirectory struct {
	StockLocate         uint16
	TrackingNumber      uint16
	Timestamp           uint64
	Stock               [8]byte
	MarketCategory      byte
	FinancialStatus     byte
	RoundLotSize        uint32
	RoundLotsOnly       byte
	IssueClassification byte
	IssueSubType        [2]byte
	Authenticity        byte
	ShortSaleThreshold  byte
	IPOFlag             byte
	LULDRefPriceTier    byte
	ETPFlag             byte
	ETPLeverageFactor   uint32
	InverseIndicator    byte
}

func (StockDirectory) MessageType() MsgType { return MsgStockDirectory }

// PadStock right-pads a ticker to 8 bytes with spaces, matching the wire
// representation of the Stock field on Add Order and Stock Directory.
func PadStock(ticker string) [8]byte {
	var b [8]byte
	copy(b[:], ticker)
	for i := len(ticker); i < 8; i++ {
		b[i] = ' '
	}
	return b
}
