package resolve

import (
	"net"

	"github.com/cbrgm/resolve/resolvconf"
	"github.com/cbrgm/resolve/resolver"
)

// ResolveHost loads the default configuration (resolvconf.Load) and
// resolves host to one or more addresses (§6 free function resolve_host).
func ResolveHost(host string) ([]net.IP, error) {
	r, err := newDefaultResolver()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ResolveHost(host)
}

// ResolveAddr loads the default configuration and resolves addr to its PTR
// hostname (§6 free function resolve_addr).
func ResolveAddr(addr net.IP) (string, error) {
	r, err := newDefaultResolver()
	if err != nil {
		return "", err
	}
	defer r.Close()
	return r.ResolveAddr(addr)
}

func newDefaultResolver() (*resolver.Resolver, error) {
	cfg, err := resolvconf.Load()
	if err != nil {
		return nil, err
	}
	return resolver.New(cfg)
}
