// Package record implements the typed resource-record catalog: decode/encode
// pairs for A, AAAA, CNAME, MX, NS, PTR, SOA, SRV, and TXT rdata (RFC 1035
// §3.3-3.4, RFC 2782 for SRV).
//
// Each concrete record type decodes from an independently-addressed rdata
// buffer rather than the full message: a name embedded in rdata (CNAME, NS,
// PTR, MX's exchange, SOA's mname/rname, SRV's target) resolves any
// compression pointer against that local buffer, offset 0, not the
// surrounding message. Real-world resolvers servers rarely compress names
// inside rdata for these record kinds, and the wire codec (internal/wire)
// already isolates rdata into its own []byte before handing it here, so this
// keeps C3 and C4 decoupled at the cost of that one corner case.
package record

import (
	"github.com/cbrgm/resolve/internal/werrors"
	"github.com/cbrgm/resolve/internal/wire"
)

// Kind is implemented by every concrete record type: it reports the static
// wire type tag the decode/encode pair targets and can populate itself from
// an rdata buffer in its own wire layout. decodeFrom is unexported, so T is
// closed over this package's own record types: resolve_record<R> can only be
// instantiated for a kind this catalog actually implements.
type Kind interface {
	Type() wire.RecordType
	decodeFrom(data []byte) error
}

// Decode decodes data (a single resource record's rdata) as record kind T,
// returning ExtraneousData if T's decoder doesn't consume every byte.
func Decode[T any, PT interface {
	*T
	Kind
}](data []byte) (T, error) {
	var v T
	if err := PT(&v).decodeFrom(data); err != nil {
		return v, err
	}
	return v, nil
}

// TypeOf returns the static wire record type for T, e.g. TypeOf[A]() == wire.TypeA.
func TypeOf[T any, PT interface {
	*T
	Kind
}]() wire.RecordType {
	var v T
	return PT(&v).Type()
}

func newReader(data []byte) *wire.Reader { return wire.NewReader(data) }

func requireConsumed(r *wire.Reader, op string) error {
	if !r.AtEnd() {
		return &werrors.WireError{Kind: werrors.ExtraneousData, Operation: op, Offset: r.Pos()}
	}
	return nil
}
