package itch

import "encoding/binary"

// Decode parses a single ITCH message body (the bytes following the 2-byte
// length prefix in the MoldUDP64 message stream, starting with the type
// byte) into its typed Event. Unrecognized type bytes return (nil, nil) so
// callers can skip them without treating them as a decode failure.
func Decode(payload []byte) (Event, error) {
	if len(payload) == 0 {
		return nil, decodeErr(0, "empty payload")
	}
	t := MsgType(payload[0])
	switch t {
	case MsgAddOrder, MsgAddOrderMPID:
		return decodeAddOrder(t, payload)
	case MsgOrderExecuted:
		return decodeExecutedOrder(payload)
	case MsgOrderExecutedWithPrice:
		return decodeExecutedWithPriceOrder(payload)
	case MsgOrderCancel:
		return decodeCancelOrder(payload)
	case MsgOrderDelete:
		return decodeDeleteOrder(payload)
	case MsgOrderReplace:
		return decodeReplaceOrder(payload)
	case MsgStockDirectory:
		return decodeStockDirectory(payload)
	default:
		return nil, nil
	}
}

// readTimestamp reads the 6-byte big-endian nanosecond-since-midnight field
// that every in-scope message body carries at the same offset.
func readTimestamp(b []byte) uint64 {
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

func decodeAddOrder(t MsgType, b []byte) (Event, error) {
	want := 36
	if t == MsgAddOrderMPID {
		want = 40
	}
	if len(b) < want {
		return nil, shortBodyErr(t, want, len(b))
	}
	side := Side(b[19])
	if side != SideBuy && side != SideSell {
		return nil, decodeErr(t, "side byte is neither 'B' nor 'S'")
	}
	m := AddOrder{
		Type:           t,
		StockLocate:    binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber: binary.BigEndian.Uint16(b[3:5]),
		Timestamp:      readTimestamp(b[5:11]),
		Reference:      binary.BigEndian.Uint64(b[11:19]),
		Side:           side,
		Shares:         binary.BigEndian.Uint32(b[20:24]),
		Price:          binary.BigEndian.Uint32(b[32:36]),
	}
	copy(m.Stock[:], b[24:32])
	if t == MsgAddOrderMPID {
		copy(m.Attribution[:], b[36:40])
	}
	return m, nil
}

func decodeExecutedOrder(b []byte) (Event, error) {
	const want = 31
	if len(b) < want {
		return nil, shortBodyErr(MsgOrderExecuted, want, len(b))
	}
	return ExecutedOrder{
		StockLocate:    binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber: binary.BigEndian.Uint16(b[3:5]),
		Timestamp:      readTimestamp(b[5:11]),
		Reference:      binary.BigEndian.Uint64(b[11:19]),
		ExecutedShares: binary.BigEndian.Uint32(b[19:23]),
		MatchNumber:    binary.BigEndian.Uint64(b[23:31]),
	}, nil
}

func decodeExecutedWithPriceOrder(b []byte) (Event, error) {
	const want = 36
	if len(b) < want {
		return nil, shortBodyErr(MsgOrderExecutedWithPrice, want, len(b))
	}
	printable := b[31]
	if printable != 'Y' && printable != 'N' {
		return nil, decodeErr(MsgOrderExecutedWithPrice, "printable byte is neither 'Y' nor 'N'")
	}
	return ExecutedWithPriceOrder{
		StockLocate:    binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber: binary.BigEndian.Uint16(b[3:5]),
		Timestamp:      readTimestamp(b[5:11]),
		Reference:      binary.BigEndian.Uint64(b[11:19]),
		ExecutedShares: binary.BigEndian.Uint32(b[19:23]),
		MatchNumber:    binary.BigEndian.Uint64(b[23:31]),
		Printable:      printable == 'Y',
		Price:          binary.BigEndian.Uint32(b[32:36]),
	}, nil
}

func decodeCancelOrder(b []byte) (Event, error) {
	const want = 23
	if len(b) < want {
		return nil, shortBodyErr(MsgOrderCancel, want, len(b))
	}
	return CancelOrder{
		StockLocate:    binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber: binary.BigEndian.Uint16(b[3:5]),
		Timestamp:      readTimestamp(b[5:11]),
		Reference:      binary.BigEndian.Uint64(b[11:19]),
		CanceledShares: binary.BigEndian.Uint32(b[19:23]),
	}, nil
}

func decodeDeleteOrder(b []byte) (Event, error) {
	const want = 19
	if len(b) < want {
		return nil, shortBodyErr(MsgOrderDelete, want, len(b))
	}
	return DeleteOrder{
		StockLocate:    binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber: binary.BigEndian.Uint16(b[3:5]),
		Timestamp:      readTimestamp(b[5:11]),
		Reference:      binary.BigEndian.Uint64(b[11:19]),
	}, nil
}

// decodeReplaceOrder follows spec.md's field order: price immediately after
// the two references, shares last. This differs from some ITCH reference
// encoders that place shares before price — do not transpose.
func decodeReplaceOrder(b []byte) (Event, error) {
	const want = 35
	if len(b) < want {
		return nil, shortBodyErr(MsgOrderReplace, want, len(b))
	}
	return ReplaceOrder{
		StockLocate:       binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber:    binary.BigEndian.Uint16(b[3:5]),
		Timestamp:         readTimestamp(b[5:11]),
		OriginalReference: binary.BigEndian.Uint64(b[11:19]),
		NewReference:      binary.BigEndian.Uint64(b[19:27]),
		Price:             binary.BigEndian.Uint32(b[27:31]),
		Shares:            binary.BigEndian.Uint32(b[31:35]),
	}, nil
}

// decodeStockDirectory reads the Stock field as the 8 bytes immediately
// following the timestamp.
func decodeStockDirectory(b []byte) (Event, error) {
	const want = 39
	if len(b) < want {
		return nil, shortBodyErr(MsgStockDirectory, want, len(b))
	}
	m := StockDirectory{
		StockLocate:         binary.BigEndian.Uint16(b[1:3]),
		TrackingNumber:      binary.BigEndian.Uint16(b[3:5]),
		Timestamp:           readTimestamp(b[5:11]),
		MarketCategory:      b[19],
		FinancialStatus:     b[20],
		RoundLotSize:        binary.BigEndian.Uint32(b[21:25]),
		RoundLotsOnly:       b[25],
		IssueClassification: b[26],
		Authenticity:        b[29],
		ShortSaleThreshold:  b[30],
		IPOFlag:             b[31],
		LULDRefPriceTier:    b[32],
		ETPFlag:             b[33],
		ETPLeverageFactor:   binary.BigEndian.Uint32(b[34:38]),
		InverseIndicator:    b[38],
	}
	copy(m.Stock[:], b[11:19])
	copy(m.IssueSubType[:], b[27:29])
	return m, nil
}
