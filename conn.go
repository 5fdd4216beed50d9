package shardmux

import "fmt"

// ConnKind describes the flavor of a pooled backend connection. The pool
// resolves it once when the connection is established; the hook never
// re-detects it at call time.
type ConnKind int

const (
	// KindSingleNode is a direct connection to one backend process.
	KindSingleNode ConnKind = iota + 1
	// KindNodeSet is a composite connection to a legacy multi-node
	// configuration set, holding a sub-connection per member.
	KindNodeSet
	// KindOther covers connection flavors the hook has no special
	// handling for (replica-set tracking connections and the like).
	KindOther
)

// String returns the name of a connection kind.
// If value X is not a known kind, returns "unknown kind (code X)" string.
func (kind ConnKind) String() string {
	switch kind {
	case KindSingleNode:
		return "single-node"
	case KindNodeSet:
		return "node-set"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("unknown kind (code %d)", int(kind))
	}
}

// ReplyMetadataReader is invoked after every inbound response with the
// response's metadata document and the address of the responding host.
type ReplyMetadataReader func(md Metadata, host string) error

// RequestMetadataWriter is invoked before every outbound command to append
// request-scoped metadata to the outgoing envelope.
type RequestMetadataWriter func(b *MetadataBuilder) error

// Conn is the surface of a pooled backend connection the lifecycle hook
// needs. The pool owns the connection's lifetime and identity; the hook
// receives it for the duration of a single lifecycle call only.
type Conn interface {
	// Kind reports the connection flavor, fixed at establishment.
	Kind() ConnKind
	// Addr reports the backend address in host:port form. For composite
	// connections it is the address list of the member set.
	Addr() string
	// Call performs a command synchronously and returns its response.
	Call(req Request) (*Response, error)
	// SetReplyMetadataReader registers the callback run after every
	// inbound response. A second call replaces the previous callback.
	SetReplyMetadataReader(reader ReplyMetadataReader)
	// SetRequestMetadataWriter registers the callback run before every
	// outbound command. A second call replaces the previous callback.
	SetRequestMetadataWriter(writer RequestMetadataWriter)
	// Reset releases any pooled sub-connections held for secondary
	// members so the shared pool can reclaim them independently.
	// Connections without sub-connections treat it as a no-op, and
	// repeated calls are safe.
	Reset() error
}

// QueryHandlerAttacher is implemented by connection flavors that accept
// auxiliary query handlers. Handlers are consulted per command and may
// take over routing for commands they recognize.
type QueryHandlerAttacher interface {
	AttachQueryHandler(handler QueryHandler)
}
