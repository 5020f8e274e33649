// Package resolve provides a client-side DNS resolver: wire-format codec,
// UDP query engine, forward/reverse lookups, and typed resource-record
// queries (RFC 1035).
//
// Most callers only need the package-level ResolveHost and ResolveAddr
// functions, which load the system's default configuration (via
// resolvconf.Load) and perform a single lookup:
//
//	addrs, err := resolve.ResolveHost("example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, addr := range addrs {
//	    fmt.Println(addr)
//	}
//
// Callers that need to issue many lookups, control timeouts/retries, or
// query typed records should construct a resolver.Resolver directly; see
// the resolver package.
package resolve
