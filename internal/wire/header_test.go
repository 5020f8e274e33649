package wire

import (
	"bytes"
	"testing"
)

func TestHeader_BitLayout(t *testing.T) {
	h := Header{
		ID:                 0xABCD,
		Response:           false,
		Opcode:             OpcodeQuery,
		RecursionDesired:   true,
		RecursionAvailable: true,
		RCode:              RCodeNoError,
	}
	counts := sectionCounts{1, 0, 0, 0}

	w := NewWriter()
	if err := encodeHeader(w, h, counts); err != nil {
		t.Fatalf("encodeHeader: %v", err)
	}

	want := []byte{0xAB, 0xCD, 0x01, 0x80, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % X, want % X", w.Bytes(), want)
	}

	r := NewReader(w.Bytes())
	got, gotCounts, err := decodeHeader(r)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if got != h {
		t.Fatalf("decoded header = %+v, want %+v", got, h)
	}
	if gotCounts != counts {
		t.Fatalf("decoded counts = %v, want %v", gotCounts, counts)
	}
}

func TestHeader_ResponseAndFlags(t *testing.T) {
	h := Header{
		ID:            1,
		Response:      true,
		Opcode:        OpcodeNotify,
		Authoritative: true,
		Truncated:     true,
		RCode:         RCodeNameError,
	}
	w := NewWriter()
	if err := encodeHeader(w, h, sectionCounts{}); err != nil {
		t.Fatalf("encodeHeader: %v", err)
	}
	r := NewReader(w.Bytes())
	got, _, err := decodeHeader(r)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if got != h {
		t.Fatalf("got %+v, want %+v", got, h)
	}
}

func TestOpcodeAndRCode_UnknownRoundTrip(t *testing.T) {
	h := Header{Opcode: Opcode(9), RCode: RCode(7)}
	w := NewWriter()
	if err := encodeHeader(w, h, sectionCounts{}); err != nil {
		t.Fatalf("encodeHeader: %v", err)
	}
	r := NewReader(w.Bytes())
	got, _, err := decodeHeader(r)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if got.Opcode != Opcode(9) || got.RCode != RCode(7) {
		t.Fatalf("unknown opcode/rcode did not round-trip: %+v", got)
	}
}
