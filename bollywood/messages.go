package bollywood

// Start is delivered to every actor exactly once, before any user traffic,
// as soon as Manager.Init starts the worker pool.
type Start struct{}

// Shutdown is delivered to every actor exactly once, always as the last
// envelope its worker processes, when Manager.End is called.
type Shutdown struct{}

// Timeout is the value Reference.AskTimeout returns, together with
// ErrAskTimeout, when its bounded wait expires without a reply.
// AskTimeout always leaves ID at 0.
type Timeout struct {
	ID int
}

// Reject is the in-band failure notification for undeliverable remote
// messages (see the remote package). MessageType names the type that could
// not be delivered: the frame's wire type name when the inbound transport
// rejects the frame, and the payload's Go type name when the target actor
// has no handler for it (the two differ for a type registered under
// another wire name). Reason is a free-text diagnostic, and
// RejectedBy is the name of the actor that raised the rejection
// (conventionally the receiving process's inbound transport actor).
type Reject struct {
	MessageType string
	Reason      string
	RejectedBy  string
}
