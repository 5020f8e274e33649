package record

import (
	"fmt"
	"net"

	"github.com/cbrgm/resolve/internal/wire"
)

// AAAA is an IPv6 address record: 8 big-endian u16 segments, 16 bytes total
// (RFC 3596 §2.1).
type AAAA struct {
	Address net.IP
}

func (AAAA) Type() wire.RecordType { return wire.TypeAAAA }

func (rec *AAAA) decodeFrom(data []byte) error {
	r := newReader(data)
	addr, err := r.ReadBytes(16)
	if err != nil {
		return err
	}
	if err := requireConsumed(r, "decode AAAA"); err != nil {
		return err
	}
	ip := make(net.IP, 16)
	copy(ip, addr)
	rec.Address = ip
	return nil
}

// Encode appends the record's rdata to w.
func (rec AAAA) Encode(w *wire.Writer) error {
	v6 := rec.Address.To16()
	if v6 == nil {
		return fmt.Errorf("record: AAAA.Address is not a valid IP address")
	}
	return w.WriteBytes(v6)
}
