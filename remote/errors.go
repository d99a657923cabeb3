package remote

import "errors"

// EncodeError and TransportError are the two failure modes the outbound
// transport cannot hide from the caller: a payload type that was never
// registered, or a send that failed synchronously (bad endpoint,
// connection refused, write error).
var (
	ErrEncodeError    = errors.New("remote: encode error")
	ErrTransportError = errors.New("remote: transport error")
)
