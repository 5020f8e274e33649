package resolver

import (
	"errors"
	"net"
	"time"

	"github.com/cbrgm/resolve/internal/transport"
	"github.com/cbrgm/resolve/internal/werrors"
	"github.com/cbrgm/resolve/internal/wire"
)

// Resolver owns one UDP socket, one Config, and a rotation cursor (§3
// Resolver instance). It is not safe for concurrent use: every operation
// blocks the calling goroutine across zero or more UDP sends and receives,
// and the rotation cursor and per-instance ID generator are unsynchronized
// (§5).
type Resolver struct {
	conn         transport.Conn
	config       Config
	ids          wire.IDGenerator
	rotateCursor int
}

// New constructs a Resolver bound to an unspecified, ephemeral UDP endpoint.
func New(config Config, opts ...Option) (*Resolver, error) {
	return newResolver(nil, config, opts)
}

// Bind constructs a Resolver whose socket is explicitly bound to addr.
func Bind(addr *net.UDPAddr, config Config, opts ...Option) (*Resolver, error) {
	return newResolver(addr, config, opts)
}

func newResolver(addr *net.UDPAddr, config Config, opts []Option) (*Resolver, error) {
	r := &Resolver{config: config}
	for _, opt := range opts {
		opt(r)
	}
	if r.conn == nil {
		var sock *transport.Socket
		var err error
		if addr == nil {
			sock, err = transport.New()
		} else {
			sock, err = transport.Bind(addr)
		}
		if err != nil {
			return nil, err
		}
		r.conn = sock
	}
	return r, nil
}

// Close releases the resolver's underlying socket.
func (r *Resolver) Close() error {
	return r.conn.Close()
}

// basicMessage builds the common outbound query shell (§4.6.6): a fresh
// id, a Query-opcode query with recursion desired, and a single question.
func (r *Resolver) basicMessage(name string, qtype wire.RecordType) wire.Message {
	return wire.Message{
		Header: wire.Header{
			ID:               r.ids.Next(),
			RecursionDesired: true,
		},
		Question: []wire.Question{{Name: name, Type: qtype, Class: wire.ClassIN}},
	}
}

// exchange drives the request/response retry protocol (§4.6.5): attempts
// send/receive cycles against rotating or indexed name servers, accounting
// for the remaining per-attempt timeout budget across any stray datagrams
// that arrive on the socket before a matching reply.
func (r *Resolver) exchange(outMsg wire.Message) (wire.Message, error) {
	cfg := r.config
	k := len(cfg.NameServers)
	if k == 0 {
		return wire.Message{}, &LookupError{Op: "exchange", Err: errNoNameServers}
	}

	var lastErr error

attempts:
	for attempt := 0; attempt < int(cfg.Attempts); attempt++ {
		var idx int
		if cfg.Rotate {
			idx = r.rotateCursor % k
			r.rotateCursor++
		} else {
			idx = attempt % k
		}
		serverCopy := cfg.NameServers[idx]
		addr := net.Addr(&serverCopy)

		if err := r.conn.Send(outMsg, addr); err != nil {
			return wire.Message{}, err
		}

		remaining := cfg.Timeout

		for {
			if err := r.conn.SetDeadline(time.Now().Add(remaining)); err != nil {
				return wire.Message{}, err
			}
			start := time.Now()
			msg, ok, err := r.conn.RecvFiltered(addr)
			elapsed := time.Since(start)
			remaining -= elapsed
			if remaining < 0 {
				remaining = 0
			}

			if err != nil {
				if isTimeoutErr(err) {
					lastErr = err
					continue attempts
				}
				return wire.Message{}, err
			}
			if !ok {
				// Stray datagram from an unexpected source; discard and
				// keep waiting out the remaining budget.
				continue
			}
			if msg.Header.ID != outMsg.Header.ID || !msg.Header.Response {
				// Parseable but unrelated to this query; discard.
				continue
			}
			if msg.Header.RCode != wire.RCodeNoError {
				return wire.Message{}, &werrors.ServerError{RCode: uint8(msg.Header.RCode), RCodeOf: msg.Header.RCode}
			}
			return msg, nil
		}
	}

	return wire.Message{}, lastErr
}

func isTimeoutErr(err error) bool {
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}

var errNoNameServers = errors.New("resolver: Config.NameServers must not be empty")
