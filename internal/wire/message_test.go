package wire

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cbrgm/resolve/internal/werrors"
)

func TestMessage_EncodeDecodeRoundTrip(t *testing.T) {
	msg := Message{
		Header: Header{
			ID:               0x1234,
			RecursionDesired: true,
		},
		Question: []Question{
			{Name: "example.com.", Type: TypeA, Class: ClassIN},
		},
		Answer: []Resource{
			{Name: "example.com.", Type: TypeA, Class: ClassIN, TTL: 300, Data: []byte{192, 0, 2, 1}},
		},
	}

	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}

	decoded, err := DecodeMessage(encoded)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}

	if decoded.Header.ID != msg.Header.ID || !decoded.Header.RecursionDesired {
		t.Fatalf("header mismatch: %+v", decoded.Header)
	}
	if !reflect.DeepEqual(decoded.Question, msg.Question) {
		t.Fatalf("question mismatch: %+v", decoded.Question)
	}
	if !reflect.DeepEqual(decoded.Answer, msg.Answer) {
		t.Fatalf("answer mismatch: %+v", decoded.Answer)
	}
	if len(decoded.Authority) != 0 || len(decoded.Additional) != 0 {
		t.Fatalf("expected empty authority/additional, got %+v / %+v", decoded.Authority, decoded.Additional)
	}
}

func TestDecodeMessage_ExtraneousData(t *testing.T) {
	msg := Message{Header: Header{ID: 1}}
	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	encoded = append(encoded, 0xFF)

	_, err = DecodeMessage(encoded)
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.ExtraneousData {
		t.Fatalf("got %v, want ExtraneousData", err)
	}
}

func TestDecodeMessage_ShortMessage(t *testing.T) {
	_, err := DecodeMessage([]byte{0, 1, 2})
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.ShortMessage {
		t.Fatalf("got %v, want ShortMessage", err)
	}
}

func TestEncodeMessage_TooManyEntries(t *testing.T) {
	msg := Message{
		Header:   Header{},
		Question: make([]Question, 0x10000),
	}
	_, err := EncodeMessage(msg)
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.TooLong {
		t.Fatalf("got %v, want TooLong", err)
	}
}

func TestIDGenerator_SeedsOnceAndWraps(t *testing.T) {
	var g IDGenerator
	first := g.Next()
	second := g.Next()
	if second != first+1 {
		t.Fatalf("expected sequential IDs, got %d then %d", first, second)
	}

	g2 := IDGenerator{next: 0xFFFF, seeded: true}
	if got := g2.Next(); got != 0xFFFF {
		t.Fatalf("got %d, want 0xFFFF", got)
	}
	if got := g2.Next(); got != 0 {
		t.Fatalf("expected wraparound to 0, got %d", got)
	}
}
