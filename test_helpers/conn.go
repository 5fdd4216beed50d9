package test_helpers

import (
	"sync"
	"testing"

	"github.com/shardmux/go-shardmux"
)

type connResponse struct {
	resp *shardmux.Response
	err  error
}

// StubConn is an implementation of the Conn interface used for testing
// purposes. Calls consume queued responses in order unless CallFunc is
// set.
type StubConn struct {
	// CallFunc, when set, serves every Call instead of the queue.
	CallFunc func(req shardmux.Request) (*shardmux.Response, error)
	// ResetErr is returned from Reset.
	ResetErr error

	kind shardmux.ConnKind
	addr string
	t    *testing.T

	mutex     sync.Mutex
	responses []connResponse
	requests  []shardmux.Request
	reader    shardmux.ReplyMetadataReader
	writer    shardmux.RequestMetadataWriter
	resets    int
}

var _ shardmux.Conn = (*StubConn)(nil)

// NewStubConn creates a StubConn with the given queued responses. Each
// response could be one of two types: *shardmux.Response or error.
func NewStubConn(t *testing.T, kind shardmux.ConnKind, addr string,
	responses ...interface{}) *StubConn {
	t.Helper()

	conn := &StubConn{kind: kind, addr: addr, t: t}
	for _, response := range responses {
		queued := connResponse{}

		switch resp := response.(type) {
		case *shardmux.Response:
			queued.resp = resp
		case error:
			queued.err = resp
		default:
			t.Fatalf("unsupported type: %T", response)
		}

		conn.responses = append(conn.responses, queued)
	}
	return conn
}

// Kind reports the kind given at construction.
func (conn *StubConn) Kind() shardmux.ConnKind {
	return conn.kind
}

// Addr reports the address given at construction.
func (conn *StubConn) Addr() string {
	return conn.addr
}

// Call saves the request and returns the next queued response.
func (conn *StubConn) Call(req shardmux.Request) (*shardmux.Response, error) {
	conn.mutex.Lock()
	conn.requests = append(conn.requests, req)
	fn := conn.CallFunc
	conn.mutex.Unlock()

	if fn != nil {
		return fn(req)
	}

	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	if len(conn.responses) == 0 {
		conn.t.Errorf("stub conn %s: no queued responses", conn.addr)
		return nil, shardmux.ClientError{
			Code: shardmux.ErrProbeFailed,
			Msg:  "no queued responses",
		}
	}
	response := conn.responses[0]
	conn.responses = conn.responses[1:]
	return response.resp, response.err
}

// SetReplyMetadataReader stores the reader for inspection.
func (conn *StubConn) SetReplyMetadataReader(reader shardmux.ReplyMetadataReader) {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.reader = reader
}

// SetRequestMetadataWriter stores the writer for inspection.
func (conn *StubConn) SetRequestMetadataWriter(writer shardmux.RequestMetadataWriter) {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.writer = writer
}

// Reset counts invocations and returns ResetErr.
func (conn *StubConn) Reset() error {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.resets++
	return conn.ResetErr
}

// Requests returns the requests Call received, in order.
func (conn *StubConn) Requests() []shardmux.Request {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	return append([]shardmux.Request(nil), conn.requests...)
}

// Reader returns the installed reply metadata reader, if any.
func (conn *StubConn) Reader() shardmux.ReplyMetadataReader {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	return conn.reader
}

// Writer returns the installed request metadata writer, if any.
func (conn *StubConn) Writer() shardmux.RequestMetadataWriter {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	return conn.writer
}

// Resets returns how many times Reset ran.
func (conn *StubConn) Resets() int {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	return conn.resets
}
