package capture

import (
	"encoding/binary"
	"testing"
)

func TestAcceptedMatchesPort(t *testing.T) {
	frame := make([]byte, 64)
	binary.BigEndian.PutUint16(frame[UDPDestPortOffset:], UDPDestPort)
	if !Accepted(frame) {
		t.Fatal("expected frame with matching port to be accepted")
	}
}

func TestAcceptedRejectsOtherPorts(t *testing.T) {
	frame := make([]byte, 64)
	binary.BigEndian.PutUint16(frame[UDPDestPortOffset:], 9999)
	if Accepted(frame) {
		t.Fatal("expected frame with non-matching port to be rejected")
	}
}

func TestAcceptedRejectsShortFrames(t *testing.T) {
	if Accepted(make([]byte, 10)) {
		t.Fatal("a frame too short to carry the port field must not be accepted")
	}
}

func TestDecodeMoldHeader(t *testing.T) {
	frame := make([]byte, MoldHeaderOffset+MoldHeaderLength+4)
	h := frame[MoldHeaderOffset:]
	copy(h[0:10], []byte("SESSION001"))
	binary.BigEndian.PutUint64(h[10:18], 99)
	binary.BigEndian.PutUint16(h[18:20], 2)
	copy(frame[MoldHeaderOffset+MoldHeaderLength:], []byte{0xAA, 0xBB, 0xCC, 0xDD})

	hdr, rest, err := DecodeMoldHeader(frame)
	if err != nil {
		t.Fatalf("DecodeMoldHeader: %v", err)
	}
	if hdr.SequenceNumber != 99 || hdr.MessageCount != 2 {
		t.Fatalf("got %+v", hdr)
	}
	if string(hdr.Session[:]) != "SESSION001" {
		t.Fatalf("session = %q", hdr.Session)
	}
	if len(rest) != 4 {
		t.Fatalf("rest len = %d, want 4", len(rest))
	}
}

func TestDecodeMoldHeaderTooShort(t *testing.T) {
	if _, _, err := DecodeMoldHeader(make([]byte, 10)); err == nil {
		t.Fatal("expected error for a frame too short to hold the header")
	}
}

func TestMessagesWalksLengthPrefixedStream(t *testing.T) {
	body := []byte{0, 2, 0xAA, 0xBB, 0, 3, 1, 2, 3}
	var got [][]byte
	err := Messages(body, 2, func(payload []byte) error {
		cp := append([]byte{}, payload...)
		got = append(got, cp)
		return nil
	})
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestMessagesTruncatedStream(t *testing.T) {
	body := []byte{0, 10, 1, 2}
	err := Messages(body, 1, func(payload []byte) error { return nil })
	if err == nil {
		t.Fatal("expected error for a message claiming more bytes than are present")
	}
}

func TestMessagesStopsOnCallbackError(t *testing.T) {
	body := []byte{0, 1, 'A', 0, 1, 'B'}
	calls := 0
	wantErr := &testError{"stop"}
	err := Messages(body, 2, func(payload []byte) error {
		calls++
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected callback error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

type testError struct{ s string }

func (e *testError) Error() string { return e.s }
