// Package transport carries DNS messages over UDP: one encode-and-send per
// outbound query, one decode per inbound datagram, with optional
// source-address filtering (§4.5). It does not loop, retry, or apply a
// timeout policy; that state machine belongs to the resolver engine, which
// drives this package's SetDeadline and RecvFiltered in a loop (§4.6.5).
package transport

import (
	"context"
	"net"
	"time"

	"github.com/cbrgm/resolve/internal/resolveaddr"
	"github.com/cbrgm/resolve/internal/werrors"
	"github.com/cbrgm/resolve/internal/wire"
)

// Conn is the capability the resolver engine needs from a transport: send
// one message, receive one datagram (optionally filtered by source), and
// arm a read deadline. Socket and Mock both implement it.
type Conn interface {
	Send(msg wire.Message, addr net.Addr) error
	RecvFrom() (wire.Message, net.Addr, error)
	RecvFiltered(expected net.Addr) (wire.Message, bool, error)
	SetDeadline(t time.Time) error
	Close() error
}

// Socket sends and receives DNS messages over a single UDP endpoint.
type Socket struct {
	conn net.PacketConn
}

var _ Conn = (*Socket)(nil)
var _ Conn = (*Mock)(nil)

// New binds Socket to an unspecified, dual-stack IPv6 endpoint on an
// ephemeral port, so it can exchange datagrams with either an IPv4 or an
// IPv6 name server without rebinding (§4.5 new()).
func New() (*Socket, error) {
	return Bind(&net.UDPAddr{IP: net.IPv6unspecified, Port: 0})
}

// Bind binds Socket explicitly to addr (§4.5 bind()).
func Bind(addr *net.UDPAddr) (*Socket, error) {
	lc := net.ListenConfig{Control: dualStackControl}
	conn, err := lc.ListenPacket(context.Background(), "udp", addr.String())
	if err != nil {
		return nil, werrors.NewNetworkError("bind", err, false)
	}
	return &Socket{conn: conn}, nil
}

// LocalAddr returns the socket's bound local address.
func (s *Socket) LocalAddr() net.Addr { return s.conn.LocalAddr() }

// Close releases the underlying UDP socket.
func (s *Socket) Close() error {
	if err := s.conn.Close(); err != nil {
		return werrors.NewNetworkError("close", err, false)
	}
	return nil
}

// SetDeadline arms a read deadline for the next Recv call, driving the
// resolver engine's per-attempt timeout (§4.6.5). A zero time.Time clears
// any existing deadline.
func (s *Socket) SetDeadline(t time.Time) error {
	if err := s.conn.SetReadDeadline(t); err != nil {
		return werrors.NewNetworkError("set deadline", err, false)
	}
	return nil
}

// Send encodes msg into a stack-sized buffer and transmits one UDP
// datagram to addr (§4.5 send()).
func (s *Socket) Send(msg wire.Message, addr net.Addr) error {
	buf, err := wire.EncodeMessage(msg)
	if err != nil {
		return err
	}
	if _, err := s.conn.WriteTo(buf, addr); err != nil {
		return werrors.NewNetworkError("send", err, isTimeout(err))
	}
	return nil
}

// RecvFrom reads one datagram, decodes it, and returns the message along
// with its source address (§4.5 recv_from()).
func (s *Socket) RecvFrom() (wire.Message, net.Addr, error) {
	buf := make([]byte, wire.MessageLimit)
	n, src, err := s.conn.ReadFrom(buf)
	if err != nil {
		return wire.Message{}, nil, werrors.NewNetworkError("recv", err, isTimeout(err))
	}
	msg, err := wire.DecodeMessage(buf[:n])
	if err != nil {
		return wire.Message{}, src, err
	}
	return msg, src, nil
}

// RecvFiltered reads one datagram and returns it decoded only if its source
// address matches expected under the relaxed IP-equality rule (§4.1);
// otherwise, even if the datagram failed to decode, it reports ok=false
// without returning an error, so the caller can discard the stray datagram
// and keep waiting (§4.6.5). A genuine I/O error (including a read-deadline
// timeout) is still returned.
func (s *Socket) RecvFiltered(expected net.Addr) (msg wire.Message, ok bool, err error) {
	msg, src, err := s.RecvFrom()
	if src != nil && !endpointsEqual(src, expected) {
		return wire.Message{}, false, nil
	}
	if err != nil {
		return wire.Message{}, false, err
	}
	return msg, true, nil
}

func endpointsEqual(a, b net.Addr) bool {
	au, aok := a.(*net.UDPAddr)
	bu, bok := b.(*net.UDPAddr)
	if !aok || !bok {
		return a.String() == b.String()
	}
	return resolveaddr.EndpointEqual(
		resolveaddr.Endpoint{IP: au.IP, Port: uint16(au.Port)},
		resolveaddr.Endpoint{IP: bu.IP, Port: uint16(bu.Port)},
	)
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}
