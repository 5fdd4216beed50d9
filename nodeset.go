package shardmux

import (
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// SubConnPool is where a composite connection returns member
// sub-connections it no longer needs, so the shared pool can reuse them
// independently.
type SubConnPool interface {
	Put(conn Conn)
}

// NodeSetConn is a composite connection to a legacy multi-node
// configuration set. It holds one sub-connection per member; the first
// member is the authoritative one and the rest are secondaries borrowed
// from the shared pool.
//
// Metadata callbacks installed on the composite are fanned out to every
// member, so each member reports replies under its own host address.
type NodeSetConn struct {
	addr string

	mutex       sync.Mutex
	primary     Conn
	secondaries []Conn
	handlers    []QueryHandler
	pool        SubConnPool
}

var _ Conn = (*NodeSetConn)(nil)
var _ QueryHandlerAttacher = (*NodeSetConn)(nil)

// NewNodeSetConn builds a composite over the given members. The pool, if
// non-nil, receives the secondary members back on Reset.
func NewNodeSetConn(primary Conn, secondaries []Conn, pool SubConnPool) *NodeSetConn {
	addrs := make([]string, 0, len(secondaries)+1)
	addrs = append(addrs, primary.Addr())
	for _, member := range secondaries {
		addrs = append(addrs, member.Addr())
	}
	return &NodeSetConn{
		addr:        strings.Join(addrs, ","),
		primary:     primary,
		secondaries: secondaries,
		pool:        pool,
	}
}

// Kind reports KindNodeSet.
func (conn *NodeSetConn) Kind() ConnKind {
	return KindNodeSet
}

// Addr returns the comma-joined address list of the member set.
func (conn *NodeSetConn) Addr() string {
	return conn.addr
}

// AttachQueryHandler registers an auxiliary routing policy consulted for
// every subsequent Call.
func (conn *NodeSetConn) AttachQueryHandler(handler QueryHandler) {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.handlers = append(conn.handlers, handler)
}

// SetReplyMetadataReader installs the reader on every member.
func (conn *NodeSetConn) SetReplyMetadataReader(reader ReplyMetadataReader) {
	for _, member := range conn.members() {
		member.SetReplyMetadataReader(reader)
	}
}

// SetRequestMetadataWriter installs the writer on every member.
func (conn *NodeSetConn) SetRequestMetadataWriter(writer RequestMetadataWriter) {
	for _, member := range conn.members() {
		member.SetRequestMetadataWriter(writer)
	}
}

// Call routes the command through the member set. Commands claimed by an
// attached query handler are offered to each member in turn and the first
// successful response wins; everything else goes to the authoritative
// member.
func (conn *NodeSetConn) Call(req Request) (*Response, error) {
	if conn.fastPathAllowed(req) {
		var errs error
		for _, member := range conn.members() {
			resp, err := member.Call(req)
			if err == nil {
				return resp, nil
			}
			errs = multierror.Append(errs, err)
		}
		return nil, errs
	}

	conn.mutex.Lock()
	primary := conn.primary
	conn.mutex.Unlock()
	return primary.Call(req)
}

// Reset gives the secondary sub-connections back to the shared pool. The
// authoritative member stays with the composite. Repeated calls are
// no-ops.
func (conn *NodeSetConn) Reset() error {
	conn.mutex.Lock()
	released := conn.secondaries
	conn.secondaries = nil
	conn.mutex.Unlock()

	var errs error
	for _, member := range released {
		if err := member.Reset(); err != nil {
			errs = multierror.Append(errs, err)
		}
		if conn.pool != nil {
			conn.pool.Put(member)
		}
	}
	return errs
}

func (conn *NodeSetConn) fastPathAllowed(req Request) bool {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	for _, handler := range conn.handlers {
		if handler.CanHandle(req) {
			return true
		}
	}
	return false
}

func (conn *NodeSetConn) members() []Conn {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	members := make([]Conn, 0, len(conn.secondaries)+1)
	members = append(members, conn.primary)
	members = append(members, conn.secondaries...)
	return members
}
