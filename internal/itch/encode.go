package itch

import "encoding/binary"

// Encode renders an Event back into its ITCH wire body (no length prefix;
// callers that need SoupBinTCP/MoldUDP64 framing add the 2-byte length
// themselves). It exists mainly so round-trip decoding can be tested against
// known-good bytes without hand-built fixtures for every message type.
func Encode(e Event) []byte {
	switch m := e.(type) {
	case AddOrder:
		return encodeAddOrder(m)
	case ExecutedOrder:
		return encodeExecutedOrder(m)
	case ExecutedWithPriceOrder:
		return encodeExecutedWithPriceOrder(m)
	case CancelOrder:
		return encodeCancelOrder(m)
	case DeleteOrder:
		return encodeDeleteOrder(m)
	case ReplaceOrder:
		return encodeReplaceOrder(m)
	case StockDirectory:
		return encodeStockDirectory(m)
	default:
		return nil
	}
}

func putTimestamp(b []byte, nanos uint64) {
	b[0] = byte(nanos >> 40)
	b[1] = byte(nanos >> 32)
	b[2] = byte(nanos >> 24)
	b[3] = byte(nanos >> 16)
	b[4] = byte(nanos >> 8)
	b[5] = byte(nanos)
}

func encodeAddOrder(m AddOrder) []byte {
	size := 36
	if m.Type == MsgAddOrderMPID {
		size = 40
	}
	b := make([]byte, size)
	b[0] = byte(m.Type)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.Reference)
	b[19] = byte(m.Side)
	binary.BigEndian.PutUint32(b[20:24], m.Shares)
	copy(b[24:32], m.Stock[:])
	binary.BigEndian.PutUint32(b[32:36], m.Price)
	if m.Type == MsgAddOrderMPID {
		copy(b[36:40], m.Attribution[:])
	}
	return b
}

func encodeExecutedOrder(m ExecutedOrder) []byte {
	b := make([]byte, 31)
	b[0] = byte(MsgOrderExecuted)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.Reference)
	binary.BigEndian.PutUint32(b[19:23], m.ExecutedShares)
	binary.BigEndian.PutUint64(b[23:31], m.MatchNumber)
	return b
}

func encodeExecutedWithPriceOrder(m ExecutedWithPriceOrder) []byte {
	b := make([]byte, 36)
	b[0] = byte(MsgOrderExecutedWithPrice)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.Reference)
	binary.BigEndian.PutUint32(b[19:23], m.ExecutedShares)
	binary.BigEndian.PutUint64(b[23:31], m.MatchNumber)
	if m.Printable {
		b[31] = 'Y'
	} else {
		b[31] = 'N'
	}
	binary.BigEndian.PutUint32(b[32:36], m.Price)
	return b
}

func encodeCancelOrder(m CancelOrder) []byte {
	b := make([]byte, 23)
	b[0] = byte(MsgOrderCancel)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.Reference)
	binary.BigEndian.PutUint32(b[19:23], m.CanceledShares)
	return b
}

func encodeDeleteOrder(m DeleteOrder) []byte {
	b := make([]byte, 19)
	b[0] = byte(MsgOrderDelete)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.Reference)
	return b
}

func encodeReplaceOrder(m ReplaceOrder) []byte {
	b := make([]byte, 35)
	b[0] = byte(MsgOrderReplace)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	binary.BigEndian.PutUint64(b[11:19], m.OriginalReference)
	binary.BigEndian.PutUint64(b[19:27], m.NewReference)
	binary.BigEndian.PutUint32(b[27:31], m.Price)
	binary.BigEndian.PutUint32(b[31:35], m.Shares)
	return b
}

func encodeStockDirectory(m StockDirectory) []byte {
	b := make([]byte, 39)
	b[0] = byte(MsgStockDirectory)
	binary.BigEndian.PutUint16(b[1:3], m.StockLocate)
	binary.BigEndian.PutUint16(b[3:5], m.TrackingNumber)
	putTimestamp(b[5:11], m.Timestamp)
	copy(b[11:19], m.Stock[:])
	b[19] = m.MarketCategory
	b[20] = m.FinancialStatus
	binary.BigEndian.PutUint32(b[21:25], m.RoundLotSize)
	b[25] = m.RoundLotsOnly
	b[26] = m.IssueClassification
	copy(b[27:29], m.IssueSubType[:])
	b[29] = m.Authenticity
	b[30] = m.ShortSaleThreshold
	b[31] = m.IPOFlag
	b[32] = m.LULDRefPriceTier
	b[33] = m.ETPFlag
	binary.BigEndian.PutUint32(b[34:38], m.ETPLeverageFactor)
	b[38] = m.InverseIndicator
	return b
}
