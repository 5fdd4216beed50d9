package shardmux_test

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/shardmux/go-shardmux"
	"github.com/shardmux/go-shardmux/test_helpers"
)

func TestNodeSetConn_Addr(t *testing.T) {
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019")
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019")
	conn := NewNodeSetConn(primary, []Conn{secondary}, nil)

	assert.Equal(t, KindNodeSet, conn.Kind())
	assert.Equal(t, "cfg1:27019,cfg2:27019", conn.Addr())
}

func TestNodeSetConn_DefaultRoutesToPrimary(t *testing.T) {
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019",
		test_helpers.BuildResponse(t, "ok", 1))
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019")
	conn := NewNodeSetConn(primary, []Conn{secondary}, nil)

	// A disabled handler claims nothing.
	conn.AttachQueryHandler(NewFastestReadHandler(false))

	_, err := conn.Call(NewProbeRequest())
	require.NoError(t, err)
	assert.Len(t, primary.Requests(), 1)
	assert.Empty(t, secondary.Requests())
}

func TestNodeSetConn_FastPathFallsThroughMembers(t *testing.T) {
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019",
		errors.New("cfg1 unreachable"))
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019",
		test_helpers.BuildResponse(t, "ok", 1))
	conn := NewNodeSetConn(primary, []Conn{secondary}, nil)
	conn.AttachQueryHandler(NewFastestReadHandler(true))

	resp, err := conn.Call(NewProbeRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, primary.Requests(), 1)
	assert.Len(t, secondary.Requests(), 1)
}

func TestNodeSetConn_FastPathAggregatesFailures(t *testing.T) {
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019",
		errors.New("cfg1 unreachable"))
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019",
		errors.New("cfg2 unreachable"))
	conn := NewNodeSetConn(primary, []Conn{secondary}, nil)
	conn.AttachQueryHandler(NewFastestReadHandler(true))

	_, err := conn.Call(NewProbeRequest())
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)
	assert.Contains(t, merr.Errors[0].Error(), "cfg1")
	assert.Contains(t, merr.Errors[1].Error(), "cfg2")
}

func TestNodeSetConn_MetadataFanOut(t *testing.T) {
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019")
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019")
	conn := NewNodeSetConn(primary, []Conn{secondary}, nil)

	conn.SetRequestMetadataWriter(func(b *MetadataBuilder) error { return nil })
	conn.SetReplyMetadataReader(func(md Metadata, host string) error { return nil })

	for _, member := range []*test_helpers.StubConn{primary, secondary} {
		assert.NotNil(t, member.Writer())
		assert.NotNil(t, member.Reader())
	}
}

func TestNodeSetConn_ResetReleasesSecondariesOnce(t *testing.T) {
	pool := &test_helpers.StubSubConnPool{}
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019")
	second := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019")
	third := test_helpers.NewStubConn(t, KindSingleNode, "cfg3:27019")
	conn := NewNodeSetConn(primary, []Conn{second, third}, pool)

	require.NoError(t, conn.Reset())
	require.NoError(t, conn.Reset())

	puts := pool.Puts()
	require.Len(t, puts, 2)
	assert.Same(t, second, puts[0].(*test_helpers.StubConn))
	assert.Same(t, third, puts[1].(*test_helpers.StubConn))
	assert.Equal(t, 0, primary.Resets())
}

func TestNodeSetConn_ResetReportsMemberFailures(t *testing.T) {
	pool := &test_helpers.StubSubConnPool{}
	primary := test_helpers.NewStubConn(t, KindSingleNode, "cfg1:27019")
	secondary := test_helpers.NewStubConn(t, KindSingleNode, "cfg2:27019")
	secondary.ResetErr = errors.New("socket already closed")
	conn := NewNodeSetConn(primary, []Conn{secondary}, pool)

	err := conn.Reset()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "socket already closed")

	// The member still went back to the pool, and a second Reset is a
	// clean no-op.
	assert.Len(t, pool.Puts(), 1)
	require.NoError(t, conn.Reset())
}
