package bollywood

import "errors"

// Configuration-time errors, raised synchronously to the caller.
var (
	// ErrDuplicateName is returned by Manager.Register when the name is
	// already bound.
	ErrDuplicateName = errors.New("bollywood: duplicate actor name")

	// ErrRegistryFrozen is returned by Manager.Register after Init has run.
	ErrRegistryFrozen = errors.New("bollywood: registry is frozen after init")

	// ErrUnsupportedRemoteSynchronous is returned by Ask when called on a
	// remote Reference. Synchronous request/response has no cross-process
	// story in this runtime.
	ErrUnsupportedRemoteSynchronous = errors.New("bollywood: ask is not supported on remote references")

	// ErrRuntimeStopped is returned by Send/Ask once Manager.End has
	// completed.
	ErrRuntimeStopped = errors.New("bollywood: runtime has stopped")

	// ErrAskTimeout is returned by AskTimeout when the reply sink is not
	// filled before the deadline.
	ErrAskTimeout = errors.New("bollywood: ask timed out waiting for reply")

	// ErrNoOutboundTransport is returned by Send on a remote Reference that
	// was constructed without an OutboundTransport.
	ErrNoOutboundTransport = errors.New("bollywood: remote reference has no outbound transport")
)
