package record

import "github.com/cbrgm/resolve/internal/wire"

// TXT is a free-text record: a single character-string, opaque bytes with a
// length prefix (RFC 1035 §3.3.14).
type TXT struct {
	Text []byte
}

func (TXT) Type() wire.RecordType { return wire.TypeTXT }

func (rec *TXT) decodeFrom(data []byte) error {
	r := newReader(data)
	text, err := r.ReadCharacterString()
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode TXT"); err != nil {
		return err
	}
	out := make([]byte, len(text))
	copy(out, text)
	rec.Text = out
	return nil
}

// Encode appends the record's rdata to w.
func (rec TXT) Encode(w *wire.Writer) error {
	return w.WriteCharacterString(rec.Text)
}
