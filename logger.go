package shardmux

import "log"

// LogKind distinguishes events reported through the Logger.
type LogKind int

const (
	// LogAuthAttempt is logged before internal-identity authentication
	// of a freshly created connection.
	LogAuthAttempt LogKind = iota + 1
	// LogCatalogModeDetected is logged when a topology probe identified
	// a configuration authority and a mode swap was scheduled.
	LogCatalogModeDetected
	// LogShardVersionResetFailed is logged when clearing cached shard
	// version state on destroy failed. Destruction proceeds anyway.
	LogShardVersionResetFailed
	// LogReleaseFailed is logged when a connection failed to give up its
	// secondary sub-connections on release. The release proceeds anyway.
	LogReleaseFailed
)

// Logger is logger type expected to be passed in options.
type Logger interface {
	Report(event LogKind, conn Conn, v ...interface{})
}

type defaultLogger struct{}

func (d defaultLogger) Report(event LogKind, conn Conn, v ...interface{}) {
	switch event {
	case LogAuthAttempt:
		log.Printf("shardmux: authenticating internal user to %s\n", conn.Addr())
	case LogCatalogModeDetected:
		mode := v[0].(CatalogMode)
		setName := v[1].(string)
		log.Printf("shardmux: %s identified as %s config server (set %q)\n", conn.Addr(), mode, setName)
	case LogShardVersionResetFailed:
		err := v[0].(error)
		log.Printf("shardmux: resetting shard version for %s failed: %s\n", conn.Addr(), err.Error())
	case LogReleaseFailed:
		err := v[0].(error)
		log.Printf("shardmux: releasing secondaries of %s failed: %s\n", conn.Addr(), err.Error())
	default:
		args := append([]interface{}{"shardmux: unexpected event ", event, conn}, v...)
		log.Print(args...)
	}
}
