// Package resolver implements the resolver engine (§4.6): search-list
// expansion, dual-stack A/AAAA resolution, reverse lookup, typed record
// queries, and the retry/timeout protocol that drives them over UDP.
package resolver

import (
	"net"
	"time"
)

// defaults mirror DnsConfig::with_name_servers (§6).
const (
	defaultNDots    = 1
	defaultTimeout  = 5 * time.Second
	defaultAttempts = 5
)

// dnsPort is the well-known port for DNS over UDP.
const dnsPort = 53

// Config holds everything the resolver engine needs to issue and retry
// queries (§3 Configuration). It is built once by the caller, directly or
// via resolvconf.Load, and consumed read-only by Resolver except for the
// internal rotation cursor.
type Config struct {
	// NameServers is the ordered list of name servers to query. Must be
	// non-empty.
	NameServers []net.UDPAddr
	// Search is the ordered list of suffixes tried during search-list
	// expansion (§4.6.1).
	Search []string
	// NDots is the minimum dot count above which a name is queried as-is,
	// bypassing search-list prefixing.
	NDots uint32
	// Timeout is the per-attempt budget, consumed across however many
	// stray datagrams arrive before a matching reply (§4.6.5).
	Timeout time.Duration
	// Attempts is the number of send/receive attempts before giving up.
	Attempts uint32
	// Rotate selects round-robin name-server selection instead of
	// per-attempt indexing (§4.6.5 step 1).
	Rotate bool
	// UseInet6 prefers AAAA over A, mapping A results into v4-mapped IPv6
	// addresses (§4.6.2).
	UseInet6 bool
	// RetryOnSocketError is parsed from resolv.conf's "options
	// retry-on-socket-error" but never consulted by the engine: reserved,
	// matching the original implementation (§9c).
	RetryOnSocketError bool
}

// NewConfig builds a Config from a list of name-server addresses, applying
// the same defaults as the original DnsConfig::with_name_servers: NDots=1,
// Timeout=5s, Attempts=5, Rotate=false, UseInet6=false, empty Search.
func NewConfig(nameServers ...net.UDPAddr) Config {
	return Config{
		NameServers: nameServers,
		NDots:       defaultNDots,
		Timeout:     defaultTimeout,
		Attempts:    defaultAttempts,
	}
}

// NameServerAddrs converts a list of IP addresses into name-server
// endpoints on the standard DNS port, a convenience for callers building a
// Config from bare IPs.
func NameServerAddrs(ips ...net.IP) []net.UDPAddr {
	out := make([]net.UDPAddr, len(ips))
	for i, ip := range ips {
		out[i] = net.UDPAddr{IP: ip, Port: dnsPort}
	}
	return out
}
