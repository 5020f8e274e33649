package record

import "github.com/cbrgm/resolve/internal/wire"

// MX is a mail-exchange record (RFC 1035 §3.3.9).
type MX struct {
	Preference uint16
	Exchange   string
}

func (MX) Type() wire.RecordType { return wire.TypeMX }

func (rec *MX) decodeFrom(data []byte) error {
	r := newReader(data)
	pref, err := r.ReadUint16()
	if err != nil {
		return err
	}
	exchange, err := r.ReadName()
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode MX"); err != nil {
		return err
	}
	rec.Preference = pref
	rec.Exchange = exchange
	return nil
}

// Encode appends the record's rdata to w.
func (rec MX) Encode(w *wire.Writer) error {
	if err := w.WriteUint16(rec.Preference); err != nil {
		return err
	}
	return w.WriteName(rec.Exchange)
}
