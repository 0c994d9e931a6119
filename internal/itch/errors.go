package itch

import "fmt"

// DecodeError reports a malformed ITCH message body: too short for its type,
// or carrying an enumerated byte (side, printable flag) outside its domain.
type DecodeError struct {
	Type   MsgType
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("itch: decode %c: %s", byte(e.Type), e.Reason)
}

func decodeErr(t MsgType, reason string) error {
	return &DecodeError{Type: t, Reason: reason}
}

func shortBodyErr(t MsgType, want, got int) error {
	return decodeErr(t, fmt.Sprintf("body too short: want %d bytes, got %d", want, got))
}
