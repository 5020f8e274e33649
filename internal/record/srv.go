package record

import "github.com/cbrgm/resolve/internal/wire"

// SRV is a service-location record (RFC 2782).
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (SRV) Type() wire.RecordType { return wire.TypeSRV }

func (rec *SRV) decodeFrom(data []byte) error {
	r := newReader(data)
	priority, err := r.ReadUint16()
	if err != nil {
		return err
	}
	weight, err := r.ReadUint16()
	if err != nil {
		return err
	}
	port, err := r.ReadUint16()
	if err != nil {
		return err
	}
	target, err := r.ReadName()
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode SRV"); err != nil {
		return err
	}

	rec.Priority = priority
	rec.Weight = weight
	rec.Port = port
	rec.Target = target
	return nil
}

// Encode appends the record's rdata to w.
func (rec SRV) Encode(w *wire.Writer) error {
	if err := w.WriteUint16(rec.Priority); err != nil {
		return err
	}
	if err := w.WriteUint16(rec.Weight); err != nil {
		return err
	}
	if err := w.WriteUint16(rec.Port); err != nil {
		return err
	}
	return w.WriteName(rec.Target)
}
