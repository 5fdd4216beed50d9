package shardmux

// AuditWriter renders the current impersonation context into outgoing
// request metadata. Backends use it to produce audit records attributed to
// the authenticated end users the router acts on behalf of.
type AuditWriter interface {
	WriteImpersonatedUsers(b *MetadataBuilder) error
}
