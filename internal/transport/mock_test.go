package transport

import (
	"net"
	"testing"

	"github.com/cbrgm/resolve/internal/werrors"
	"github.com/cbrgm/resolve/internal/wire"
)

func TestMock_SendRecordsCalls(t *testing.T) {
	m := NewMock()
	addr := &net.UDPAddr{IP: net.IPv4(1, 2, 3, 4), Port: 53}
	msg := wire.Message{Header: wire.Header{ID: 42}}

	if err := m.Send(msg, addr); err != nil {
		t.Fatalf("Send: %v", err)
	}
	sent := m.Sent()
	if len(sent) != 1 || sent[0].Message.Header.ID != 42 {
		t.Fatalf("Sent() = %+v", sent)
	}
}

func TestMock_RecvFiltered_DiscardsWrongSource(t *testing.T) {
	m := NewMock()
	wrong := &net.UDPAddr{IP: net.IPv4(9, 9, 9, 9), Port: 53}
	right := &net.UDPAddr{IP: net.IPv4(1, 1, 1, 1), Port: 53}

	m.ScriptRecv(MockDatagram{Message: wire.Message{Header: wire.Header{ID: 1}}, From: wrong})
	m.ScriptRecv(MockDatagram{Message: wire.Message{Header: wire.Header{ID: 2, Response: true}}, From: right})

	_, ok, err := m.RecvFiltered(right)
	if err != nil {
		t.Fatalf("RecvFiltered (1st): %v", err)
	}
	if ok {
		t.Fatalf("expected first datagram to be discarded as wrong source")
	}

	msg, ok, err := m.RecvFiltered(right)
	if err != nil {
		t.Fatalf("RecvFiltered (2nd): %v", err)
	}
	if !ok || msg.Header.ID != 2 {
		t.Fatalf("got ok=%v msg=%+v, want the matching datagram", ok, msg)
	}
}

func TestMock_RecvFrom_ScriptedError(t *testing.T) {
	m := NewMock()
	timeoutErr := werrors.NewNetworkError("recv", errScriptedTimeout, true)
	m.ScriptRecv(MockDatagram{Err: timeoutErr})

	_, _, err := m.RecvFrom()
	if err == nil {
		t.Fatalf("expected scripted error")
	}
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	if !ok || !te.Timeout() {
		t.Fatalf("got %v, want a timeout error", err)
	}
}

var errScriptedTimeout = &mockExhausted{}
