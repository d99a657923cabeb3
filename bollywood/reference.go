package bollywood

import "time"

type refKind uint8

const (
	refLocal refKind = iota
	refRemote
)

// OutboundTransport is the capability a remote Reference needs to deliver
// a message to its peer process. remote.Sender implements it; bollywood
// never imports the remote package, keeping the dependency one-directional
// (remote -> bollywood), per the Design Notes' observation that references
// borrow the outbound transport rather than own it.
type OutboundTransport interface {
	SendTo(endpoint, receiverName string, payload Message, sender *Reference) error
	LocalEndpoint() string
}

// Reference is the uniform destination handle: a tagged sum of a local
// variant (enqueues into a mailbox) and a remote variant (hands off to an
// OutboundTransport). No inheritance, no shared handler interface - just
// the two variants.
type Reference struct {
	kind refKind
	name string

	// local
	proc *process

	// remote
	endpoint string
	outbound OutboundTransport
}

// NewRemoteReference builds a Reference addressing actor name at endpoint,
// delivered through outbound. Used both by application code wiring up a
// peer (§6 RemoteReference) and by the inbound transport when it
// reconstructs a sender Reference from a wire frame's sender_actor/
// sender_endpoint fields.
func NewRemoteReference(name, endpoint string, outbound OutboundTransport) *Reference {
	return &Reference{kind: refRemote, name: name, endpoint: endpoint, outbound: outbound}
}

// Name returns the target actor's registered name.
func (r *Reference) Name() string { return r.name }

// IsLocal reports whether this Reference targets an actor in this process.
func (r *Reference) IsLocal() bool { return r.kind == refLocal }

// Endpoint returns the remote endpoint string, or "" for a local Reference.
func (r *Reference) Endpoint() string {
	if r.kind == refRemote {
		return r.endpoint
	}
	return ""
}

// Send delivers payload asynchronously. For a local Reference this
// enqueues into the target mailbox and returns immediately; for a remote
// Reference it delegates to the outbound transport, which may itself be
// non-blocking or may surface EncodeError/TransportError synchronously.
func (r *Reference) Send(payload Message, sender *Reference) error {
	switch r.kind {
	case refLocal:
		if r.proc.manager.stopped.Load() {
			return ErrRuntimeStopped
		}
		r.proc.mailbox.enqueue(&Envelope{Payload: payload, Sender: sender})
		return nil
	case refRemote:
		if r.outbound == nil {
			return ErrNoOutboundTransport
		}
		return r.outbound.SendTo(r.endpoint, r.name, payload, sender)
	default:
		return ErrNoOutboundTransport
	}
}

// DeliverFromRemote is Send's counterpart for the inbound transport: it
// enqueues payload as if it arrived locally but stamps the envelope as
// remote-origin, which is what makes a missing handler raise Reject
// instead of being silently dropped. Only valid on a local Reference.
func (r *Reference) DeliverFromRemote(payload Message, sender *Reference) error {
	if r.kind != refLocal {
		return ErrNoOutboundTransport
	}
	if r.proc.manager.stopped.Load() {
		return ErrRuntimeStopped
	}
	r.proc.mailbox.enqueue(&Envelope{Payload: payload, Sender: sender, remoteOrigin: true})
	return nil
}

// Ask is the synchronous, local-only RPC-style send. It allocates a
// single-slot reply sink, enqueues the envelope, and blocks until the
// sink is filled.
func (r *Reference) Ask(payload Message, sender *Reference) (Message, error) {
	if r.kind != refLocal {
		return nil, ErrUnsupportedRemoteSynchronous
	}
	if r.proc.manager.stopped.Load() {
		return nil, ErrRuntimeStopped
	}
	sink := make(chan Message, 1)
	r.proc.mailbox.enqueue(&Envelope{Payload: payload, Sender: sender, replySink: sink})
	return <-sink, nil
}

// AskTimeout is Ask bounded by a deadline: a bounded sink wait that
// returns a Timeout on expiry instead of blocking forever.
func (r *Reference) AskTimeout(payload Message, sender *Reference, timeout time.Duration) (Message, error) {
	if r.kind != refLocal {
		return nil, ErrUnsupportedRemoteSynchronous
	}
	if r.proc.manager.stopped.Load() {
		return nil, ErrRuntimeStopped
	}
	sink := make(chan Message, 1)
	r.proc.mailbox.enqueue(&Envelope{Payload: payload, Sender: sender, replySink: sink})
	select {
	case resp := <-sink:
		return resp, nil
	case <-time.After(timeout):
		return Timeout{}, ErrAskTimeout
	}
}
