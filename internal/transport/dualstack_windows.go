//go:build windows

package transport

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// dualStackControl mirrors dualstack_unix.go's IPV6_V6ONLY clear, using the
// windows package's socket-option constants in place of x/sys/unix's.
func dualStackControl(network, address string, c syscall.RawConn) error {
	if network != "udp" && network != "udp6" {
		return nil
	}
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.IPPROTO_IPV6, windows.IPV6_V6ONLY, 0)
	})
	if err != nil {
		return err
	}
	_ = sockErr
	return nil
}
