package shardmux

// SecurityContext is the process-wide security configuration the hook
// consults during admission. Implementations must be safe for concurrent
// use; the hook reads it without synchronization.
type SecurityContext interface {
	// AuthEnabled reports whether cluster-wide authentication is
	// enforced.
	AuthEnabled() bool
	// AuthenticateInternal authenticates the router's internal service
	// identity against the connection's backend. Replica set
	// authentication allows authentication against any online host.
	AuthenticateInternal(conn Conn) bool
}
