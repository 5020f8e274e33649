// Package resolvconf loads a resolver.Config from a Unix resolv.conf(5)
// file (§6 "resolv.conf consumption"). It is an external collaborator: the
// resolver engine only consumes the Config it produces, never the file
// format itself.
package resolvconf

import (
	"bufio"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cbrgm/resolve/resolver"
)

// Path is the default location of the system resolv.conf on Unix.
const Path = "/etc/resolv.conf"

const (
	dnsPort         = 53
	maxNameServers  = 3
	maxNDots        = 15
	maxTimeout      = 30 * time.Second
	maxAttempts     = 5
	defaultNDots    = 1
	defaultTimeout  = 5 * time.Second
	defaultAttempts = 5
)

// Load reads the system resolv.conf at Path and builds a resolver.Config
// from it. If Search ends up empty after parsing, it falls back to the
// portion of the system hostname after the first '.'. If no nameserver
// directive was present, Load returns an error.
func Load() (resolver.Config, error) {
	f, err := os.Open(Path)
	if err != nil {
		return resolver.Config{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses resolv.conf contents per §6: nameserver <ip> (first 3, port
// 53), domain <d> or search <d ...> (search takes precedence over domain;
// among lines of the same kind the later one wins),
// options {ndots:N, timeout:N, attempts:N, rotate, inet6,
// retry-on-socket-error}, with the caps ndots<=15, timeout<=30s,
// attempts<=5. Comments begin with # or ;.
func Parse(r io.Reader) (resolver.Config, error) {
	cfg := resolver.Config{
		NDots:    defaultNDots,
		Timeout:  defaultTimeout,
		Attempts: defaultAttempts,
	}

	var domain []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "nameserver":
			if len(fields) < 2 || len(cfg.NameServers) >= maxNameServers {
				continue
			}
			ip := net.ParseIP(fields[1])
			if ip == nil {
				continue
			}
			cfg.NameServers = append(cfg.NameServers, net.UDPAddr{IP: ip, Port: dnsPort})

		case "domain":
			if len(fields) >= 2 {
				domain = []string{fields[1]}
			}

		case "search":
			if len(fields) >= 2 {
				cfg.Search = append([]string(nil), fields[1:]...)
			}

		case "options":
			for _, opt := range fields[1:] {
				applyOption(&cfg, opt)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return resolver.Config{}, err
	}

	if len(cfg.NameServers) == 0 {
		return resolver.Config{}, errors.New("resolvconf: no nameserver directives found")
	}

	if len(cfg.Search) == 0 {
		cfg.Search = domain
	}
	if len(cfg.Search) == 0 {
		if host, err := os.Hostname(); err == nil {
			if i := strings.IndexByte(host, '.'); i >= 0 {
				cfg.Search = []string{host[i+1:]}
			}
		}
	}

	return cfg, nil
}

func applyOption(cfg *resolver.Config, opt string) {
	switch {
	case opt == "rotate":
		cfg.Rotate = true
	case opt == "inet6":
		cfg.UseInet6 = true
	case opt == "retry-on-socket-error":
		cfg.RetryOnSocketError = true
	case strings.HasPrefix(opt, "ndots:"):
		if n, err := strconv.Atoi(opt[len("ndots:"):]); err == nil {
			if n < 0 {
				n = 0
			}
			if n > maxNDots {
				n = maxNDots
			}
			cfg.NDots = uint32(n)
		}
	case strings.HasPrefix(opt, "timeout:"):
		if n, err := strconv.Atoi(opt[len("timeout:"):]); err == nil {
			d := time.Duration(n) * time.Second
			if d > maxTimeout {
				d = maxTimeout
			}
			if d > 0 {
				cfg.Timeout = d
			}
		}
	case strings.HasPrefix(opt, "attempts:"):
		if n, err := strconv.Atoi(opt[len("attempts:"):]); err == nil {
			if n > maxAttempts {
				n = maxAttempts
			}
			if n > 0 {
				cfg.Attempts = uint32(n)
			}
		}
	}
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	return line
}
