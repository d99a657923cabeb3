package bollywood

// Envelope pairs a message payload with sender metadata and, for the
// synchronous local send path, a one-shot reply sink. Envelopes are
// immutable after creation and are consumed by exactly one handler
// invocation.
type Envelope struct {
	Payload Message
	Sender  *Reference

	// replySink is set only by Reference.Ask/AskTimeout. At most one value
	// is ever sent on it.
	replySink chan Message

	// remoteOrigin is stamped by the inbound transport when it delivers a
	// decoded frame into a local mailbox. It drives the no-handler policy
	// in §4.1: local-origin misses are dropped, remote-origin misses are
	// rejected back to the sender.
	remoteOrigin bool
}
