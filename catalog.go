package shardmux

import "fmt"

// CatalogMode names the addressing protocol of a cluster configuration
// authority.
type CatalogMode int

const (
	// LegacySet is a configuration authority running as a fixed set of
	// independent nodes.
	LegacySet CatalogMode = iota
	// ReplicaSetBased is a configuration authority running as a replica
	// set.
	ReplicaSetBased
)

// String returns the name of a catalog mode.
// If value X is not a known mode, returns "unknown mode (code X)" string.
func (mode CatalogMode) String() string {
	switch mode {
	case LegacySet:
		return "legacy-set"
	case ReplicaSetBased:
		return "replica-set-based"
	default:
		return fmt.Sprintf("unknown mode (code %d)", int(mode))
	}
}

// CatalogSwapper is the catalog manager's mode-transition trigger.
//
// ScheduleReplaceIfNeeded is idempotent at the collaborator level: many
// connections probing the same authority concurrently may all invoke it
// with the same snapshot, and the catalog manager serializes the actual
// transition internally. The hook only guarantees the snapshot it passes
// (mode, replica set name, backend address) came from a single probe
// response.
type CatalogSwapper interface {
	ScheduleReplaceIfNeeded(mode CatalogMode, setName string, addr string) error
}
