// Package wire implements the DNS wire format codec: byte-level primitives,
// compressed name decoding, header bit layout, and message assembly per
// RFC 1035 §3-4.
package wire

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cbrgm/resolve/internal/idna"
	"github.com/cbrgm/resolve/internal/werrors"
)

const (
	// MaxLabelLength is the largest single label, in encoded bytes, per RFC 1035 §3.1.
	MaxLabelLength = 63
	// MaxNameLength is the largest encoded name, including length octets and the
	// terminating zero, per RFC 1035 §3.1.
	MaxNameLength = 255
	// MessageLimit is the maximum size of a DNS message carried in one UDP datagram.
	MessageLimit = 512
)

// Reader decodes wire-format values from a byte slice, tracking position for
// error reporting and for compression-pointer offsets.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential decoding starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the reader's current offset.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// AtEnd reports whether every byte has been consumed.
func (r *Reader) AtEnd() bool { return r.pos == len(r.buf) }

func (r *Reader) errAt(pos int, kind werrors.WireKind, op, detail string) error {
	return &werrors.WireError{Kind: kind, Operation: op, Offset: pos, Detail: detail}
}

// ReadBytes consumes and returns the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.errAt(r.pos, werrors.ShortMessage, "read bytes", "")
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 consumes one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 consumes a big-endian 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 consumes a big-endian 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadCharacterString consumes a single length octet followed by that many
// opaque bytes (RFC 1035 §3.3, used for TXT rdata).
func (r *Reader) ReadCharacterString() ([]byte, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(int(n))
}

// ReadName decodes a domain name at the reader's current position, following
// compression pointers per RFC 1035 §4.1.4. The pointer-loop defense is a
// pure backward-reference rule: a pointer is only honored if its target is
// strictly less than the offset where this name began, which makes a
// visited-set unnecessary (see DESIGN.md).
func (r *Reader) ReadName() (string, error) {
	start := r.pos
	pos := r.pos
	var labels []string
	encoded := 0
	resume, resumeSet := 0, false

loop:
	for {
		if pos >= len(r.buf) {
			return "", r.errAt(pos, werrors.ShortMessage, "read name", "")
		}
		length := r.buf[pos]
		switch {
		case length&0xC0 == 0xC0:
			if pos+1 >= len(r.buf) {
				return "", r.errAt(pos, werrors.ShortMessage, "read name", "truncated compression pointer")
			}
			target := int(length&0x3F)<<8 | int(r.buf[pos+1])
			if !resumeSet {
				resume = pos + 2
				resumeSet = true
			}
			if target >= start {
				return "", r.errAt(pos, werrors.InvalidName, "read name", "compression pointer does not point backward")
			}
			pos = target
			continue loop

		case length&0xC0 != 0:
			return "", r.errAt(pos, werrors.InvalidMessage, "read name", "reserved label length tag")

		case length == 0:
			if !resumeSet {
				resume = pos + 1
			}
			break loop

		default:
			labelLen := int(length)
			if pos+1+labelLen > len(r.buf) {
				return "", r.errAt(pos, werrors.ShortMessage, "read name", "truncated label")
			}
			raw := r.buf[pos+1 : pos+1+labelLen]
			if err := validateLabelBytes(raw); err != nil {
				return "", r.errAt(pos, werrors.InvalidName, "read name", err.Error())
			}
			label, err := idna.ToUnicodeLabel(string(raw))
			if err != nil {
				return "", r.errAt(pos, werrors.InvalidName, "read name", "idna: "+err.Error())
			}
			labels = append(labels, label)
			encoded += 1 + labelLen
			if encoded+1 > MaxNameLength {
				return "", r.errAt(pos, werrors.InvalidName, "read name", "name exceeds 255 bytes")
			}
			pos += 1 + labelLen
		}
	}

	r.pos = resume
	if len(labels) == 0 {
		return ".", nil
	}
	return strings.Join(labels, ".") + ".", nil
}

// validateLabelBytes enforces the §3 label charset: ASCII only, no
// whitespace or control characters, no leading or trailing hyphen.
func validateLabelBytes(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty label")
	}
	for _, c := range b {
		if c > 0x7F {
			return fmt.Errorf("non-ASCII byte %#x in label", c)
		}
		if c < 0x20 || c == 0x7F {
			return fmt.Errorf("control character in label")
		}
		if c == ' ' {
			return fmt.Errorf("whitespace in label")
		}
	}
	if b[0] == '-' || b[len(b)-1] == '-' {
		return fmt.Errorf("label begins or ends with a hyphen")
	}
	return nil
}

// Writer accumulates wire-format bytes, refusing any write that would push
// the total past MessageLimit.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with MessageLimit of headroom preallocated.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, MessageLimit)}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) writeRaw(b []byte, op string) error {
	if len(w.buf)+len(b) > MessageLimit {
		return &werrors.WireError{Kind: werrors.TooLong, Operation: op, Offset: len(w.buf)}
	}
	w.buf = append(w.buf, b...)
	return nil
}

// WriteBytes appends b verbatim.
func (w *Writer) WriteBytes(b []byte) error { return w.writeRaw(b, "write bytes") }

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) error { return w.writeRaw([]byte{v}, "write uint8") }

// WriteUint16 appends a big-endian 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return w.writeRaw(b[:], "write uint16")
}

// WriteUint32 appends a big-endian 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return w.writeRaw(b[:], "write uint32")
}

// WriteCharacterString appends a length octet followed by b.
func (w *Writer) WriteCharacterString(b []byte) error {
	if len(b) > 255 {
		return &werrors.WireError{Kind: werrors.TooLong, Operation: "write character-string", Offset: len(w.buf), Detail: "exceeds 255 bytes"}
	}
	if err := w.WriteUint8(uint8(len(b))); err != nil {
		return err
	}
	return w.WriteBytes(b)
}

// WriteName encodes name and appends it. See EncodeName for the encoding rules.
func (w *Writer) WriteName(name string) error {
	encoded, err := EncodeName(name)
	if err != nil {
		return err
	}
	return w.writeRaw(encoded, "write name")
}

// EncodeName encodes name into its wire form: length-prefixed labels
// terminated by a zero byte. The root name "." encodes as a single zero
// byte; the empty string is not a valid name and fails with InvalidName.
// Compression is never emitted on encode (§4.3.3).
func EncodeName(name string) ([]byte, error) {
	if name == "" {
		return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: "empty name"}
	}
	if name == "." {
		return []byte{0}, nil
	}

	trimmed := strings.TrimSuffix(name, ".")
	labels := strings.Split(trimmed, ".")
	buf := make([]byte, 0, MaxNameLength)
	total := 0

	for _, label := range labels {
		if label == "" {
			return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: "empty label"}
		}
		ascii, err := idna.ToASCIILabel(label)
		if err != nil {
			return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: err.Error()}
		}
		if len(ascii) > MaxLabelLength {
			return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: fmt.Sprintf("label %q exceeds %d bytes", ascii, MaxLabelLength)}
		}
		if err := validateLabelBytes([]byte(ascii)); err != nil {
			return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: err.Error()}
		}
		total += 1 + len(ascii)
		if total+1 > MaxNameLength {
			return nil, &werrors.WireError{Kind: werrors.InvalidName, Operation: "encode name", Detail: "name exceeds 255 bytes"}
		}
		buf = append(buf, byte(len(ascii)))
		buf = append(buf, ascii...)
	}
	buf = append(buf, 0)
	return buf, nil
}
