package capture

import (
	"encoding/binary"
	"fmt"
)

// Fixed byte offsets into a captured Ethernet/IP/UDP frame. This replay
// engine never parses the full protocol stack — only the two fields it
// actually needs, at the offsets a standard Ethernet+IPv4+UDP frame puts
// them at.
const (
	// UDPDestPortOffset is the byte offset of the UDP destination port
	// within the frame.
	UDPDestPortOffset = 36
	// UDPDestPort is the MoldUDP64 feed's well-known destination port.
	UDPDestPort = 26477
	// MoldHeaderOffset is the byte offset where the MoldUDP64 header
	// begins once a frame has passed the port filter.
	MoldHeaderOffset = 42
	// MoldHeaderLength is the fixed size of the MoldUDP64 header.
	MoldHeaderLength = 20
)

// MoldHeader is a parsed MoldUDP64 session header.
type MoldHeader struct {
	Session        [10]byte
	SequenceNumber uint64
	MessageCount   uint16
}

// Accepted reports whether frame is long enough to carry the UDP
// destination port field and whether that port matches the feed's.
func Accepted(frame []byte) bool {
	if len(frame) < UDPDestPortOffset+2 {
		return false
	}
	port := binary.BigEndian.Uint16(frame[UDPDestPortOffset : UDPDestPortOffset+2])
	return port == UDPDestPort
}

// DecodeMoldHeader parses the MoldUDP64 header starting at MoldHeaderOffset
// and returns it along with the remaining message-stream bytes that follow
// it in the frame.
func DecodeMoldHeader(frame []byte) (MoldHeader, []byte, error) {
	if len(frame) < MoldHeaderOffset+MoldHeaderLength {
		return MoldHeader{}, nil, fmt.Errorf("capture: frame too short for MoldUDP64 header: %d bytes", len(frame))
	}
	h := frame[MoldHeaderOffset : MoldHeaderOffset+MoldHeaderLength]
	var hdr MoldHeader
	copy(hdr.Session[:], h[0:10])
	hdr.SequenceNumber = binary.BigEndian.Uint64(h[10:18])
	hdr.MessageCount = binary.BigEndian.Uint16(h[18:20])
	return hdr, frame[MoldHeaderOffset+MoldHeaderLength:], nil
}

// Messages walks count length-prefixed messages out of body, invoking fn
// with each message's payload. It stops at the first error fn returns, and
// reports a capture-level error itself if body runs out before count
// messages have been consumed.
func Messages(body []byte, count uint16, fn func(payload []byte) error) error {
	offset := 0
	for i := uint16(0); i < count; i++ {
		if offset+2 > len(body) {
			return fmt.Errorf("capture: message stream truncated at message %d of %d", i, count)
		}
		length := int(binary.BigEndian.Uint16(body[offset : offset+2]))
		offset += 2
		if offset+length > len(body) {
			return fmt.Errorf("capture: message %d of %d truncated: want %d bytes, have %d", i, count, length, len(body)-offset)
		}
		payload := body[offset : offset+length]
		offset += length
		if err := fn(payload); err != nil {
			return err
		}
	}
	return nil
}
