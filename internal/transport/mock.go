package transport

import (
	"net"
	"sync"
	"time"

	"github.com/cbrgm/resolve/internal/werrors"
	"github.com/cbrgm/resolve/internal/wire"
)

// MockDatagram is one inbound datagram a Mock transport will hand back from
// RecvFrom/RecvFiltered, in arrival order.
type MockDatagram struct {
	Message wire.Message
	From    net.Addr
	// Err, if set, is returned instead of Message/From: used to simulate a
	// read-deadline timeout or other I/O failure (§4.6.5's retry loop).
	Err error
}

// Mock is a test double for Socket, recording every Send call and replaying
// a scripted sequence of inbound datagrams. It exists so the resolver
// engine's retry, timeout-remainder, and rotation logic (§4.6.5, §8 property
// 11-12) can be exercised without a real UDP socket, mirroring the
// teacher's own MockTransport.
type Mock struct {
	mu    sync.Mutex
	sent  []MockSend
	recvs []MockDatagram
}

// MockSend records one Send invocation.
type MockSend struct {
	Message wire.Message
	Addr    net.Addr
}

// NewMock returns a Mock with no scripted datagrams.
func NewMock() *Mock {
	return &Mock{}
}

// ScriptRecv appends one datagram (or error) to the queue RecvFrom and
// RecvFiltered will draw from, in order.
func (m *Mock) ScriptRecv(d MockDatagram) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recvs = append(m.recvs, d)
}

// Send records the call; it never fails.
func (m *Mock) Send(msg wire.Message, addr net.Addr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, MockSend{Message: msg, Addr: addr})
	return nil
}

// Sent returns every recorded Send call, in order.
func (m *Mock) Sent() []MockSend {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockSend, len(m.sent))
	copy(out, m.sent)
	return out
}

// RecvFrom pops the next scripted datagram.
func (m *Mock) RecvFrom() (wire.Message, net.Addr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.recvs) == 0 {
		return wire.Message{}, nil, werrors.NewNetworkError("recv", errNoMoreDatagrams, true)
	}
	d := m.recvs[0]
	m.recvs = m.recvs[1:]
	if d.Err != nil {
		return wire.Message{}, nil, d.Err
	}
	return d.Message, d.From, nil
}

// RecvFiltered pops the next scripted datagram and applies the same
// source-match filtering Socket.RecvFiltered does.
func (m *Mock) RecvFiltered(expected net.Addr) (wire.Message, bool, error) {
	msg, src, err := m.RecvFrom()
	if err != nil {
		return wire.Message{}, false, err
	}
	if !endpointsEqual(src, expected) {
		return wire.Message{}, false, nil
	}
	return msg, true, nil
}

// SetDeadline is a no-op on Mock: timeouts are simulated by scripting an
// Err datagram instead of arming a real deadline.
func (m *Mock) SetDeadline(_ time.Time) error { return nil }

// Close is a no-op.
func (m *Mock) Close() error { return nil }

var errNoMoreDatagrams = &mockExhausted{}

type mockExhausted struct{}

func (*mockExhausted) Error() string { return "mock transport: no more scripted datagrams" }
func (*mockExhausted) Timeout() bool { return true }
