package wire

import (
	"errors"
	"testing"

	"github.com/cbrgm/resolve/internal/werrors"
)

func TestReadName_Uncompressed(t *testing.T) {
	data := []byte{
		4, 't', 'e', 's', 't',
		5, 'l', 'o', 'c', 'a', 'l',
		0,
	}
	r := NewReader(data)
	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if name != "test.local." {
		t.Fatalf("got %q, want %q", name, "test.local.")
	}
	if r.Pos() != 12 {
		t.Fatalf("Pos() = %d, want 12", r.Pos())
	}
}

func TestReadName_Root(t *testing.T) {
	r := NewReader([]byte{0})
	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if name != "." {
		t.Fatalf("got %q, want %q", name, ".")
	}
}

func TestReadName_CompressionPointer(t *testing.T) {
	data := []byte{
		// offset 0: "example.local."
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		5, 'l', 'o', 'c', 'a', 'l',
		0,
		// offset 15: "test" + pointer to offset 8 ("local")
		4, 't', 'e', 's', 't',
		0xC0, 0x08,
	}
	r := NewReader(data)
	r.pos = 15
	name, err := r.ReadName()
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if name != "test.local." {
		t.Fatalf("got %q, want %q", name, "test.local.")
	}
	if r.Pos() != 22 {
		t.Fatalf("Pos() = %d, want 22", r.Pos())
	}
}

func TestReadName_PointerLoopRejected(t *testing.T) {
	data := []byte{0xC0, 0x00} // pointer to its own offset
	r := NewReader(data)
	_, err := r.ReadName()
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.InvalidName {
		t.Fatalf("got %v, want InvalidName", err)
	}
}

func TestReadName_PointerForwardRejected(t *testing.T) {
	data := []byte{
		0xC0, 0x02, // pointer forward to offset 2, which is within this same name
		0, 0,
	}
	r := NewReader(data)
	_, err := r.ReadName()
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.InvalidName {
		t.Fatalf("got %v, want InvalidName", err)
	}
}

func TestEncodeName_RoundTrip(t *testing.T) {
	tests := []string{".", "example.com.", "example.com", "a.b.c.", "bücher.de."}
	for _, name := range tests {
		encoded, err := EncodeName(name)
		if err != nil {
			t.Fatalf("EncodeName(%q): %v", name, err)
		}
		r := NewReader(encoded)
		decoded, err := r.ReadName()
		if err != nil {
			t.Fatalf("ReadName after EncodeName(%q): %v", name, err)
		}
		want := name
		if want[len(want)-1] != '.' {
			want += "."
		}
		if decoded != want {
			t.Fatalf("round trip %q: got %q, want %q", name, decoded, want)
		}
	}
}

func TestEncodeName_MaxLength(t *testing.T) {
	// 4 labels of 63 bytes: 4*(1+63) = 256, plus terminator = 257 > 255.
	// Use labels sized so the total lands exactly at 255.
	label63 := make([]byte, 63)
	for i := range label63 {
		label63[i] = 'a'
	}
	// 3 labels of 63 bytes (3*64=192) + 1 label of 61 bytes (62) + terminator (1) = 255.
	label61 := label63[:61]
	name := string(label63) + "." + string(label63) + "." + string(label63) + "." + string(label61) + "."
	encoded, err := EncodeName(name)
	if err != nil {
		t.Fatalf("EncodeName at exactly 255 bytes: %v", err)
	}
	if len(encoded) != 255 {
		t.Fatalf("encoded length = %d, want 255", len(encoded))
	}

	tooLong := string(label63) + "." + string(label63) + "." + string(label63) + "." + string(label63) + "."
	if _, err := EncodeName(tooLong); err == nil {
		t.Fatalf("EncodeName over 255 bytes: expected error")
	}
}

func TestEncodeName_EmptyLabelRejected(t *testing.T) {
	if _, err := EncodeName("foo..bar."); err == nil {
		t.Fatalf("expected error for consecutive dots")
	}
	if _, err := EncodeName(".foo."); err == nil {
		t.Fatalf("expected error for leading dot")
	}
}

func TestEncodeName_EmptyStringRejected(t *testing.T) {
	_, err := EncodeName("")
	var werr *werrors.WireError
	if !errors.As(err, &werr) || werr.Kind != werrors.InvalidName {
		t.Fatalf("got %v, want InvalidName", err)
	}
}

func TestEncodeName_Root(t *testing.T) {
	encoded, err := EncodeName(".")
	if err != nil {
		t.Fatalf("EncodeName(\".\"): %v", err)
	}
	if len(encoded) != 1 || encoded[0] != 0 {
		t.Fatalf("got %v, want [0]", encoded)
	}
}

func TestWriter_TooLong(t *testing.T) {
	w := NewWriter()
	big := make([]byte, MessageLimit)
	if err := w.WriteBytes(big); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := w.WriteUint8(1); err == nil {
		t.Fatalf("expected TooLong once at MessageLimit")
	}
}

func TestReadCharacterString(t *testing.T) {
	r := NewReader([]byte{5, 'h', 'e', 'l', 'l', 'o'})
	got, err := r.ReadCharacterString()
	if err != nil {
		t.Fatalf("ReadCharacterString: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}
