package record

import "github.com/cbrgm/resolve/internal/wire"

// CNAME is a canonical-name alias record (RFC 1035 §3.3.1).
type CNAME struct{ Name string }

func (CNAME) Type() wire.RecordType { return wire.TypeCNAME }

func (rec *CNAME) decodeFrom(data []byte) error {
	name, err := decodeSoleName(data, "decode CNAME")
	if err != nil {
		return err
	}
	rec.Name = name
	return nil
}

// Encode appends the record's rdata to w.
func (rec CNAME) Encode(w *wire.Writer) error { return w.WriteName(rec.Name) }

// NS is an authoritative name-server record (RFC 1035 §3.3.11).
type NS struct{ Name string }

func (NS) Type() wire.RecordType { return wire.TypeNS }

func (rec *NS) decodeFrom(data []byte) error {
	name, err := decodeSoleName(data, "decode NS")
	if err != nil {
		return err
	}
	rec.Name = name
	return nil
}

// Encode appends the record's rdata to w.
func (rec NS) Encode(w *wire.Writer) error { return w.WriteName(rec.Name) }

// PTR is a reverse-lookup pointer record (RFC 1035 §3.3.12).
type PTR struct{ Name string }

func (PTR) Type() wire.RecordType { return wire.TypePTR }

func (rec *PTR) decodeFrom(data []byte) error {
	name, err := decodeSoleName(data, "decode PTR")
	if err != nil {
		return err
	}
	rec.Name = name
	return nil
}

// Encode appends the record's rdata to w.
func (rec PTR) Encode(w *wire.Writer) error { return w.WriteName(rec.Name) }

func decodeSoleName(data []byte, op string) (string, error) {
	r := newReader(data)
	name, err := r.ReadName()
	if err != nil {
		return "", err
	}
	if err := requireConsumed(r, op); err != nil {
		return "", err
	}
	return name, nil
}
