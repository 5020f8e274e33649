package resolver

import (
	"net"
	"strings"

	"github.com/cbrgm/resolve/internal/record"
	"github.com/cbrgm/resolve/internal/resolveaddr"
	"github.com/cbrgm/resolve/internal/wire"
)

// ResolveHost resolves host to one or more addresses, applying search-list
// expansion (§4.6.1) and the dual-stack A/AAAA strategy (§4.6.2).
func (r *Resolver) ResolveHost(host string) ([]net.IP, error) {
	var lastErr error
	for _, candidate := range searchCandidates(host, r.config.Search, r.config.NDots) {
		addrs, err := r.dualStack(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if len(addrs) > 0 {
			return addrs, nil
		}
	}
	if lastErr == nil {
		lastErr = errNotFound("no address records found")
	}
	return nil, wrapErr("failed to resolve host", lastErr)
}

// searchCandidates implements §4.6.1: a name ending in "." or with at least
// nDots dots is queried as-is; otherwise each search suffix is tried in
// order, followed finally by the bare name.
func searchCandidates(name string, search []string, nDots uint32) []string {
	if strings.HasSuffix(name, ".") || dotCount(name) >= int(nDots) {
		return []string{name}
	}
	candidates := make([]string, 0, len(search)+1)
	for _, suffix := range search {
		candidates = append(candidates, name+"."+suffix)
	}
	candidates = append(candidates, name)
	return candidates
}

func dotCount(s string) int {
	n := 0
	for _, c := range s {
		if c == '.' {
			n++
		}
	}
	return n
}

// dualStack implements §4.6.2: query A and AAAA (in the order UseInet6
// selects), mapping A results into v4-mapped IPv6 form when AAAA is
// queried first.
func (r *Resolver) dualStack(name string) ([]net.IP, error) {
	if r.config.UseInet6 {
		aaaa, errAAAA := r.queryAddrs(name, wire.TypeAAAA)
		if len(aaaa) > 0 {
			return aaaa, nil
		}
		a, errA := r.queryAddrs(name, wire.TypeA)
		if len(a) > 0 {
			mapped := make([]net.IP, len(a))
			for i, ip := range a {
				mapped[i] = ip.To16()
			}
			return mapped, nil
		}
		if errA != nil {
			return nil, errA
		}
		return nil, errAAAA
	}

	a, errA := r.queryAddrs(name, wire.TypeA)
	var out []net.IP
	out = append(out, a...)

	aaaa, errAAAA := r.queryAddrs(name, wire.TypeAAAA)
	out = append(out, aaaa...)

	if len(out) == 0 {
		if errAAAA != nil {
			return nil, errAAAA
		}
		return nil, errA
	}
	return out, nil
}

func (r *Resolver) queryAddrs(name string, qtype wire.RecordType) ([]net.IP, error) {
	msg, err := r.exchange(r.basicMessage(name, qtype))
	if err != nil {
		return nil, err
	}
	var out []net.IP
	for _, res := range allRecords(msg) {
		switch qtype {
		case wire.TypeA:
			if res.Type != wire.TypeA {
				continue
			}
			a, err := record.Decode[record.A](res.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, a.Address)
		case wire.TypeAAAA:
			if res.Type != wire.TypeAAAA {
				continue
			}
			aaaa, err := record.Decode[record.AAAA](res.Data)
			if err != nil {
				return nil, err
			}
			out = append(out, aaaa.Address)
		}
	}
	return out, nil
}

// allRecords concatenates a message's answer, authority, and additional
// sections, in that order, so a caller can scan every resource record a
// reply carries regardless of which section placed it there.
func allRecords(msg wire.Message) []wire.Resource {
	out := make([]wire.Resource, 0, len(msg.Answer)+len(msg.Authority)+len(msg.Additional))
	out = append(out, msg.Answer...)
	out = append(out, msg.Authority...)
	out = append(out, msg.Additional...)
	return out
}

// ResolveAddr resolves an IP address to its PTR hostname (§4.6.3).
func (r *Resolver) ResolveAddr(addr net.IP) (string, error) {
	name, err := resolveaddr.ReverseName(addr)
	if err != nil {
		return "", wrapErr("failed to resolve address", err)
	}

	msg, err := r.exchange(r.basicMessage(name, wire.TypePTR))
	if err != nil {
		return "", wrapErr("failed to resolve address", err)
	}

	for _, res := range allRecords(msg) {
		if res.Type != wire.TypePTR {
			continue
		}
		ptr, err := record.Decode[record.PTR](res.Data)
		if err != nil {
			return "", wrapErr("failed to resolve address", err)
		}
		return strings.TrimSuffix(ptr.Name, "."), nil
	}
	return "", wrapErr("failed to resolve address", errNotFound("no PTR record found"))
}

// ResolveRecord queries name for records of type T's wire record type,
// filters replies to matching resources, and decodes each through the
// record catalog (§4.6.4). T must be one of the concrete types in
// internal/record (A, AAAA, CNAME, MX, NS, PTR, SOA, SRV, TXT).
func ResolveRecord[T any, PT interface {
	*T
	record.Kind
}](r *Resolver, name string) ([]T, error) {
	qtype := record.TypeOf[T, PT]()
	msg, err := r.exchange(r.basicMessage(name, qtype))
	if err != nil {
		return nil, wrapErr("failed to resolve record", err)
	}

	var out []T
	for _, res := range allRecords(msg) {
		if res.Type != qtype {
			continue
		}
		v, err := record.Decode[T](res.Data)
		if err != nil {
			return nil, wrapErr("failed to resolve record", err)
		}
		out = append(out, v)
	}
	return out, nil
}
