package record

import "github.com/cbrgm/resolve/internal/wire"

// SOA is a zone's start-of-authority record (RFC 1035 §3.3.13).
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOA) Type() wire.RecordType { return wire.TypeSOA }

func (rec *SOA) decodeFrom(data []byte) error {
	r := newReader(data)
	mname, err := r.ReadName()
	if err != nil {
		return err
	}
	rname, err := r.ReadName()
	if err != nil {
		return err
	}
	serial, err := r.ReadUint32()
	if err != nil {
		return err
	}
	refresh, err := r.ReadUint32()
	if err != nil {
		return err
	}
	retry, err := r.ReadUint32()
	if err != nil {
		return err
	}
	expire, err := r.ReadUint32()
	if err != nil {
		return err
	}
	minimum, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode SOA"); err != nil {
		return err
	}

	rec.MName = mname
	rec.RName = rname
	rec.Serial = serial
	rec.Refresh = refresh
	rec.Retry = retry
	rec.Expire = expire
	rec.Minimum = minimum
	return nil
}

// Encode appends the record's rdata to w.
func (rec SOA) Encode(w *wire.Writer) error {
	if err := w.WriteName(rec.MName); err != nil {
		return err
	}
	if err := w.WriteName(rec.RName); err != nil {
		return err
	}
	for _, v := range []uint32{rec.Serial, rec.Refresh, rec.Retry, rec.Expire, rec.Minimum} {
		if err := w.WriteUint32(v); err != nil {
			return err
		}
	}
	return nil
}
