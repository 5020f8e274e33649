//go:build plan9 || js

package transport

import "syscall"

// dualStackControl is a no-op on platforms without a usable socket-option
// Control hook; ListenPacket's own default dual-stack behavior still applies.
func dualStackControl(_, _ string, _ syscall.RawConn) error { return nil }
