package shardmux

// QueryHandler is an auxiliary routing policy attached to a composite
// connection. Each outgoing command is offered to the attached handlers;
// a handler claiming the command changes how the member set is consulted.
type QueryHandler interface {
	// CanHandle reports whether the handler wants to route the command.
	CanHandle(req Request) bool
}

// Commands that are safe to answer from any member of a configuration
// set: read-only and insensitive to which member responds.
var fastReadCommands = map[string]bool{
	"ismaster":     true,
	"ping":         true,
	"serverStatus": true,
}

// FastestReadHandler lets allowlisted read-only commands be answered by
// whichever member of a node set responds first, instead of requiring the
// authoritative member. It is attached to every node-set connection at
// admission; whether it claims anything is governed by server
// configuration.
type FastestReadHandler struct {
	enabled bool
}

var _ QueryHandler = (*FastestReadHandler)(nil)

// NewFastestReadHandler returns a handler that claims allowlisted
// commands when enabled is true and nothing otherwise.
func NewFastestReadHandler(enabled bool) *FastestReadHandler {
	return &FastestReadHandler{enabled: enabled}
}

// CanHandle reports whether the command may go to the fastest member.
func (handler *FastestReadHandler) CanHandle(req Request) bool {
	return handler.enabled && fastReadCommands[req.Command()]
}
