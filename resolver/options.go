package resolver

import "github.com/cbrgm/resolve/internal/transport"

// Option configures a Resolver at construction time. Config (§3) is a plain
// data record the caller builds once; Option instead layers the genuinely
// optional knobs that sit on top of it, following the teacher's functional
// option pattern.
type Option func(*Resolver)

// WithConn overrides the UDP transport a Resolver uses, bypassing New/Bind's
// own socket creation. Tests use this to inject a transport.Mock so the
// retry/timeout/rotation logic (§4.6.5) can be exercised without a real
// socket.
func WithConn(conn transport.Conn) Option {
	return func(r *Resolver) { r.conn = conn }
}
