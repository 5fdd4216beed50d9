package shardmux

import (
	"fmt"

	"github.com/google/uuid"
)

// HookOpts is a way to configure a LifecycleHook.
type HookOpts struct {
	// ShardedConnections reports whether this router instance serves
	// sharded traffic. When set, the hook installs the reply-metadata
	// reader on every connection and reclaims shard-version state on
	// destroy. Fixed for the lifetime of the hook.
	ShardedConnections bool
	// FastestConfigReads enables fastest-responder-first reads on
	// node-set connections. Mirrors server configuration.
	FastestConfigReads bool
	// RouterID identifies this router instance in outgoing request
	// metadata. Generated when zero.
	RouterID uuid.UUID
	// Security is the process-wide security configuration.
	Security SecurityContext
	// Audit renders the impersonation context into request metadata.
	Audit AuditWriter
	// Catalog is the catalog manager's mode-transition trigger.
	Catalog CatalogSwapper
	// Versions is the router's shard-version table.
	Versions VersionTracker
	// Replies receives per-response metadata from the installed reply
	// reader. Defaults to a fresh ReplyStats.
	Replies ReplyRecorder
	// Logger is user specified logger used for lifecycle events.
	Logger Logger
}

// LifecycleHook is the admission and teardown hook the router installs on
// its shared connection pool.
//
// The pool calls OnCreate exactly once per newly established connection,
// OnRelease each time the connection returns to the pool and OnDestroy
// exactly once when the connection is permanently discarded. The hook
// keeps no per-connection state and never retains the connection beyond
// the call, so lifecycle calls for distinct connections run fully in
// parallel.
type LifecycleHook struct {
	sharded      bool
	fastestReads bool
	routerID     uuid.UUID
	security     SecurityContext
	audit        AuditWriter
	catalog      CatalogSwapper
	versions     VersionTracker
	replies      ReplyRecorder
	logger       Logger
}

// NewLifecycleHook creates and configures a new LifecycleHook. The
// security, audit, catalog and version collaborators are required.
func NewLifecycleHook(opts HookOpts) (*LifecycleHook, error) {
	var missing string
	switch {
	case opts.Security == nil:
		missing = "Security"
	case opts.Audit == nil:
		missing = "Audit"
	case opts.Catalog == nil:
		missing = "Catalog"
	case opts.Versions == nil:
		missing = "Versions"
	}
	if missing != "" {
		return nil, ClientError{
			Code: ErrHookMisconfigured,
			Msg:  fmt.Sprintf("HookOpts.%s should be specified", missing),
		}
	}

	hook := &LifecycleHook{
		sharded:      opts.ShardedConnections,
		fastestReads: opts.FastestConfigReads,
		routerID:     opts.RouterID,
		security:     opts.Security,
		audit:        opts.Audit,
		catalog:      opts.Catalog,
		versions:     opts.Versions,
		replies:      opts.Replies,
		logger:       opts.Logger,
	}
	if hook.routerID == uuid.Nil {
		hook.routerID = uuid.New()
	}
	if hook.replies == nil {
		hook.replies = NewReplyStats()
	}
	if hook.logger == nil {
		hook.logger = defaultLogger{}
	}
	return hook, nil
}

// RouterID returns the identity stamped into outgoing request metadata.
func (hook *LifecycleHook) RouterID() uuid.UUID {
	return hook.routerID
}

// OnCreate admits a newly established connection. On error the connection
// is unusable and the pool must discard it; the hook does not retry.
func (hook *LifecycleHook) OnCreate(conn Conn) error {
	// Authenticate as the first thing we do.
	if hook.security.AuthEnabled() {
		hook.logger.Report(LogAuthAttempt, conn)
		if !hook.security.AuthenticateInternal(conn) {
			return ClientError{
				Code: ErrAuthenticationFailed,
				Msg:  fmt.Sprintf("can't authenticate to server %s", conn.Addr()),
			}
		}
	}

	if hook.sharded {
		// Capture the response metadata of commands we pass along for
		// the client, so later error and version reports can target
		// the node that produced the state.
		conn.SetReplyMetadataReader(hook.readReplyMetadata)
	}

	// Every command carries the impersonated users so the backend can
	// attribute audit records to the proper authenticated user(s).
	conn.SetRequestMetadataWriter(hook.writeRequestMetadata)

	switch conn.Kind() {
	case KindNodeSet:
		if attacher, ok := conn.(QueryHandlerAttacher); ok {
			attacher.AttachQueryHandler(NewFastestReadHandler(hook.fastestReads))
		}
	case KindSingleNode:
		res, err := probeTopology(conn)
		if err != nil {
			return err
		}
		if !res.hasConfigServerMode {
			return nil
		}
		hook.logger.Report(LogCatalogModeDetected, conn, res.configServerMode, res.replicaSetName)
		err = hook.catalog.ScheduleReplaceIfNeeded(res.configServerMode, res.replicaSetName, conn.Addr())
		if err != nil {
			return ClientError{
				Code: ErrCatalogSwapFailed,
				Msg: fmt.Sprintf("can't schedule %s catalog manager for %s: %s",
					res.configServerMode, conn.Addr(), err),
			}
		}
	}

	return nil
}

// OnDestroy runs when the pool permanently discards a connection. It is
// best-effort: destruction always completes.
func (hook *LifecycleHook) OnDestroy(conn Conn) {
	if hook.sharded && hook.versions.Versionable(conn) {
		if err := hook.versions.ResetShardVersion(conn); err != nil {
			hook.logger.Report(LogShardVersionResetFailed, conn, err)
		}
	}
}

// OnRelease runs each time a connection goes back to the pool. It makes
// composite connections give their secondary sub-connections back so the
// shared pool can reclaim them. Best-effort: the release always
// completes.
func (hook *LifecycleHook) OnRelease(conn Conn) {
	if err := conn.Reset(); err != nil {
		hook.logger.Report(LogReleaseFailed, conn, err)
	}
}

func (hook *LifecycleHook) readReplyMetadata(md Metadata, host string) error {
	return hook.replies.Record(md, host)
}

func (hook *LifecycleHook) writeRequestMetadata(b *MetadataBuilder) error {
	if err := hook.audit.WriteImpersonatedUsers(b); err != nil {
		return err
	}
	b.Append("routerId", hook.routerID.String())
	return nil
}
