package shardmux

import (
	"sync"
	"time"
)

// ReplyRecorder consumes per-response metadata, keyed by the address of
// the responding host. The installed reply reader feeds it after every
// inbound response on sharded connections.
type ReplyRecorder interface {
	Record(md Metadata, host string) error
}

// HostReply is the last recorded reply state of one backend host.
type HostReply struct {
	// Metadata is the metadata document of the most recent response.
	Metadata Metadata
	// Replies counts responses recorded for the host.
	Replies uint64
	// When is the time of the most recent response.
	When time.Time
}

// ReplyStats is an in-memory ReplyRecorder. The router reads it back when
// building client-facing error and version reports, to target the node
// that actually produced the state being reported on.
type ReplyStats struct {
	mutex sync.RWMutex
	hosts map[string]HostReply
}

var _ ReplyRecorder = (*ReplyStats)(nil)

// NewReplyStats returns an empty ReplyStats.
func NewReplyStats() *ReplyStats {
	return &ReplyStats{hosts: make(map[string]HostReply)}
}

// Record stores md as the last reply seen from host.
func (stats *ReplyStats) Record(md Metadata, host string) error {
	stats.mutex.Lock()
	defer stats.mutex.Unlock()
	entry := stats.hosts[host]
	entry.Metadata = md
	entry.Replies++
	entry.When = time.Now()
	stats.hosts[host] = entry
	return nil
}

// Last returns the reply state recorded for host, if any.
func (stats *ReplyStats) Last(host string) (HostReply, bool) {
	stats.mutex.RLock()
	defer stats.mutex.RUnlock()
	entry, ok := stats.hosts[host]
	return entry, ok
}

// Forget drops the state recorded for host.
func (stats *ReplyStats) Forget(host string) {
	stats.mutex.Lock()
	defer stats.mutex.Unlock()
	delete(stats.hosts, host)
}
