// Package with the connection lifecycle hook of the shardmux routing tier.
//
// The routing tier is stateless: it multiplexes client traffic across the
// backend data nodes of a sharded cluster through a shared connection pool.
// Every connection the pool opens passes through the hook exactly once at
// creation, zero or more times on release back to the pool, and exactly
// once on destruction. The hook authenticates the router's internal
// identity, installs the metadata callbacks that carry impersonation and
// reply state with every command, and probes new single-node connections
// for their topology role so that a configuration authority is recognized
// and the catalog access mode switched before the connection serves
// traffic.
package shardmux
