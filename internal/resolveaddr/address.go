// Package resolveaddr implements IP address comparisons and reverse-lookup
// name synthesis used to correlate UDP replies and build PTR queries.
package resolveaddr

import (
	"fmt"
	"net"
	"strings"
)

// Endpoint is a (IP, port) pair. Equality uses the same relaxed IP rule
// as Equal and requires identical ports.
type Endpoint struct {
	IP   net.IP
	Port uint16
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP.String(), fmt.Sprintf("%d", e.Port))
}

// EndpointEqual reports whether two endpoints refer to the same (IP, port),
// treating a v4-mapped or v4-compatible IPv6 address as equal to its IPv4 form.
func EndpointEqual(a, b Endpoint) bool {
	return a.Port == b.Port && Equal(a.IP, b.IP)
}

// Equal reports whether a and b are the same IP address. Two IPv6 addresses
// or two IPv4 addresses compare element-wise. A v4 address and a v6 address
// compare equal if the v6 form is the standard v4-mapped (::ffff:a.b.c.d) or
// v4-compatible (::a.b.c.d) encoding of the v4 address.
//
// net.IP.Equal already treats v4-mapped addresses as equal to their v4 form,
// but it does not recognize the deprecated v4-compatible form, which the
// resolver must also accept when matching a reply's source address.
func Equal(a, b net.IP) bool {
	if a4, b4 := a.To4(), b.To4(); a4 != nil && b4 != nil {
		return a4.Equal(b4)
	}
	if a4 := as4(a); a4 != nil {
		return equalV4(a4, b)
	}
	if b4 := as4(b); b4 != nil {
		return equalV4(b4, a)
	}
	return a.Equal(b)
}

// equalV4 compares a 4-byte address v4 against a possibly-16-byte address
// other, accepting v4-mapped and v4-compatible encodings of v4 addresses.
func equalV4(v4 net.IP, other net.IP) bool {
	if o4 := other.To4(); o4 != nil {
		return v4.Equal(o4)
	}
	o16 := other.To16()
	if o16 == nil {
		return false
	}
	if isV4Mapped(o16) || isV4Compatible(o16) {
		return net.IP(o16[12:16]).Equal(v4)
	}
	return false
}

// as4 returns the 4-byte form of ip if ip is an IPv4 address in its 4-byte
// or v4-mapped 16-byte representation, or nil otherwise. A v4-compatible
// address is not recognized here; equalV4 handles that form.
func as4(ip net.IP) net.IP {
	return ip.To4()
}

var v4MappedPrefix = [12]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

func isV4Mapped(ip16 net.IP) bool {
	return [12]byte(ip16[:12]) == v4MappedPrefix
}

func isV4Compatible(ip16 net.IP) bool {
	for _, b := range ip16[:12] {
		if b != 0 {
			return false
		}
	}
	// The all-zeroes and all-but-last-byte-zero addresses (:: and ::1) are
	// reserved, not v4-compatible encodings; require a non-trivial v4 tail.
	return ip16[12] != 0 || ip16[13] != 0 || ip16[14] != 0
}

// ReverseName synthesizes the PTR query name for addr per RFC 1035 §3.5
// (in-addr.arpa) or RFC 3596 §2.5 (ip6.arpa). The returned name has no
// trailing dot.
func ReverseName(addr net.IP) (string, error) {
	if v4 := addr.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa", v4[3], v4[2], v4[1], v4[0]), nil
	}
	v6 := addr.To16()
	if v6 == nil {
		return "", fmt.Errorf("resolveaddr: not a valid IP address")
	}
	var b strings.Builder
	for i := len(v6) - 1; i >= 0; i-- {
		lo := v6[i] & 0xf
		hi := (v6[i] >> 4) & 0xf
		fmt.Fprintf(&b, "%x.%x.", lo, hi)
	}
	b.WriteString("ip6.arpa")
	return b.String(), nil
}
