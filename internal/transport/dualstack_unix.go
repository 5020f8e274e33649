//go:build !windows && !plan9 && !js

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// dualStackControl clears IPV6_V6ONLY on the socket being bound so an
// unspecified "[::]:0" listen also accepts IPv4 traffic mapped onto the v6
// socket, per §4.5's "binds an unspecified IPv6 dual-stack endpoint."
// Go's net package already does this itself for a plain ListenPacket on
// network "udp", but the explicit Control here mirrors the teacher's own
// socket-option-via-Control pattern and makes the dual-stack requirement
// observable rather than incidental.
func dualStackControl(network, address string, c syscall.RawConn) error {
	if network != "udp" && network != "udp6" {
		return nil
	}
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0)
	})
	if err != nil {
		return err
	}
	// ENOPROTOOPT/EINVAL here means the kernel bound an IPv4-only socket for
	// an unspecified address (no IPv6 stack available); not fatal.
	if sockErr != nil {
		return nil
	}
	return nil
}
