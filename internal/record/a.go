package record

import (
	"fmt"
	"net"

	"github.com/cbrgm/resolve/internal/wire"
)

// A is an IPv4 address record (RFC 1035 §3.4.1).
type A struct {
	Address net.IP
}

func (A) Type() wire.RecordType { return wire.TypeA }

func (rec *A) decodeFrom(data []byte) error {
	r := newReader(data)
	addr, err := r.ReadBytes(4)
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode A"); err != nil {
		return err
	}
	rec.Address = net.IPv4(addr[0], addr[1], addr[2], addr[3])
	return nil
}

// Encode appends the record's rdata to w.
func (rec A) Encode(w *wire.Writer) error {
	v4 := rec.Address.To4()
	if v4 == nil {
		return fmt.Errorf("record: A.Address is not a valid IPv4 address")
	}
	return w.WriteBytes(v4)
}
