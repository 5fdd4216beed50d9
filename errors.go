package shardmux

import "fmt"

// ClientError is an admission error produced by the lifecycle hook,
// i.e. authentication, probe or catalog-swap failures.
type ClientError struct {
	Code uint32
	Msg  string
}

// Error converts a ClientError to a string.
func (clierr ClientError) Error() string {
	return fmt.Sprintf("%s (0x%x)", clierr.Msg, clierr.Code)
}

// Temporary returns true if admitting a freshly opened connection to the
// same backend may succeed.
//
// Currently it returns true when:
//
// - the topology probe failed at the transport or command level
//
// - the catalog mode swap could not be scheduled
//
// Authentication failures and protocol violations are not temporary: a
// retry against the same backend fails the same way.
func (clierr ClientError) Temporary() bool {
	switch clierr.Code {
	case ErrProbeFailed, ErrCatalogSwapFailed:
		return true
	default:
		return false
	}
}

// Lifecycle hook error codes.
const (
	ErrAuthenticationFailed = 0x4000 + iota
	ErrProbeFailed          = 0x4000 + iota
	ErrProtocolViolation    = 0x4000 + iota
	ErrCatalogSwapFailed    = 0x4000 + iota
	ErrHookMisconfigured    = 0x4000 + iota
)
