package shardmux

// VersionTracker is the router's shard-version table. The hook only
// clears per-connection entries on destroy; everything else about version
// tracking lives with the collaborator.
type VersionTracker interface {
	// Versionable reports whether the connection kind participates in
	// shard versioning.
	Versionable(conn Conn) bool
	// ResetShardVersion clears the cached shard version recorded for
	// the connection.
	ResetShardVersion(conn Conn) error
}
