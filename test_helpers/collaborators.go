package test_helpers

import (
	"sync"

	"github.com/shardmux/go-shardmux"
)

// StubSecurity is an implementation of the SecurityContext interface used
// for testing purposes.
type StubSecurity struct {
	// Enabled is returned from AuthEnabled.
	Enabled bool
	// Fail makes AuthenticateInternal report failure.
	Fail bool

	mutex     sync.Mutex
	authCalls []string
}

var _ shardmux.SecurityContext = (*StubSecurity)(nil)

func (sec *StubSecurity) AuthEnabled() bool {
	return sec.Enabled
}

func (sec *StubSecurity) AuthenticateInternal(conn shardmux.Conn) bool {
	sec.mutex.Lock()
	defer sec.mutex.Unlock()
	sec.authCalls = append(sec.authCalls, conn.Addr())
	return !sec.Fail
}

// AuthCalls returns the addresses authentication was attempted against.
func (sec *StubSecurity) AuthCalls() []string {
	sec.mutex.Lock()
	defer sec.mutex.Unlock()
	return append([]string(nil), sec.authCalls...)
}

// StubAudit is an implementation of the AuditWriter interface used for
// testing purposes. It appends Users under the "impersonatedUsers" key.
type StubAudit struct {
	// Users is the impersonation context to render.
	Users []string
	// Err, when set, is returned instead of writing anything.
	Err error
}

var _ shardmux.AuditWriter = (*StubAudit)(nil)

func (audit *StubAudit) WriteImpersonatedUsers(b *shardmux.MetadataBuilder) error {
	if audit.Err != nil {
		return audit.Err
	}
	b.Append("impersonatedUsers", audit.Users)
	return nil
}

// CatalogCall is one recorded mode-transition trigger invocation.
type CatalogCall struct {
	Mode    shardmux.CatalogMode
	SetName string
	Addr    string
}

// StubCatalog is an implementation of the CatalogSwapper interface used
// for testing purposes.
type StubCatalog struct {
	// Err is returned from every ScheduleReplaceIfNeeded call.
	Err error

	mutex sync.Mutex
	calls []CatalogCall
}

var _ shardmux.CatalogSwapper = (*StubCatalog)(nil)

func (catalog *StubCatalog) ScheduleReplaceIfNeeded(mode shardmux.CatalogMode,
	setName string, addr string) error {
	catalog.mutex.Lock()
	defer catalog.mutex.Unlock()
	catalog.calls = append(catalog.calls, CatalogCall{Mode: mode, SetName: setName, Addr: addr})
	return catalog.Err
}

// Calls returns the recorded trigger invocations, in order.
func (catalog *StubCatalog) Calls() []CatalogCall {
	catalog.mutex.Lock()
	defer catalog.mutex.Unlock()
	return append([]CatalogCall(nil), catalog.calls...)
}

// StubVersions is an implementation of the VersionTracker interface used
// for testing purposes.
type StubVersions struct {
	// VersionableKinds lists connection kinds that carry shard-version
	// state.
	VersionableKinds map[shardmux.ConnKind]bool
	// ResetErr is returned from every ResetShardVersion call.
	ResetErr error

	mutex  sync.Mutex
	resets []string
}

var _ shardmux.VersionTracker = (*StubVersions)(nil)

func (versions *StubVersions) Versionable(conn shardmux.Conn) bool {
	return versions.VersionableKinds[conn.Kind()]
}

func (versions *StubVersions) ResetShardVersion(conn shardmux.Conn) error {
	versions.mutex.Lock()
	defer versions.mutex.Unlock()
	versions.resets = append(versions.resets, conn.Addr())
	return versions.ResetErr
}

// Resets returns the addresses whose shard version was cleared, in order.
func (versions *StubVersions) Resets() []string {
	versions.mutex.Lock()
	defer versions.mutex.Unlock()
	return append([]string(nil), versions.resets...)
}

// StubSubConnPool is an implementation of the SubConnPool interface used
// for testing purposes.
type StubSubConnPool struct {
	mutex sync.Mutex
	puts  []shardmux.Conn
}

var _ shardmux.SubConnPool = (*StubSubConnPool)(nil)

func (pool *StubSubConnPool) Put(conn shardmux.Conn) {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	pool.puts = append(pool.puts, conn)
}

// Puts returns the connections returned to the pool, in order.
func (pool *StubSubConnPool) Puts() []shardmux.Conn {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	return append([]shardmux.Conn(nil), pool.puts...)
}
