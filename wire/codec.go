// Package wire implements the JSON-over-transport wire format and the
// process-wide message registry: a type-name keyed registry that lets a
// payload be rehydrated without the two peers sharing Go types.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/lguibr/actormesh/bollywood"
)

// Frame is the one-JSON-document-per-message wire object. Field names are
// stable and documented so a non-Go peer can implement the same protocol.
type Frame struct {
	MessageType    string          `json:"message_type"`
	Receiver       string          `json:"receiver"`
	SenderActor    string          `json:"sender_actor"`
	SenderEndpoint string          `json:"sender_endpoint"`
	Message        json.RawMessage `json:"message"`
}

var (
	// ErrUnknownType means message_type has no registry entry.
	ErrUnknownType = errors.New("wire: unknown message type")
	// ErrInternalType means message_type is registered but marked
	// internal-only (Start, Shutdown) and must not be accepted from a peer.
	ErrInternalType = errors.New("wire: message type is internal-only")
	// ErrDecodeFailed wraps a constructor/unmarshal failure.
	ErrDecodeFailed = errors.New("wire: failed to decode message")
	// ErrUnregisteredType is returned by Encode for a payload type with no
	// registry entry; registration is a precondition for remote use in
	// either direction.
	ErrUnregisteredType = errors.New("wire: payload type is not registered")
)

var (
	mu           sync.RWMutex
	types        = make(map[string]reflect.Type)
	typeNames    = make(map[reflect.Type]string)
	internalOnly = make(map[string]bool)
)

// Register adds typeName -> type-of-zero to the process-wide registry,
// along with the reverse mapping Encode needs to find a payload's wire
// name. The wire name is caller-chosen and independent of zero's own Go
// identifier: a caller may register a struct under any name it likes,
// including one that differs from the struct's own name (as
// codec_test.go's "WireGreeting"/greeting does), so Encode must never
// recover the wire name from reflect.TypeOf(payload).Name() itself. zero
// is never mutated; only its type is retained.
func Register(typeName string, zero bollywood.Message) {
	mu.Lock()
	defer mu.Unlock()
	t := reflect.TypeOf(zero)
	types[typeName] = t
	typeNames[t] = typeName
}

// registerInternal registers a type and flags it as internal-only: it may
// be encoded (sent) but must be silently discarded on decode when it
// arrives from a peer. Used for Start and Shutdown.
func registerInternal(typeName string, zero bollywood.Message) {
	Register(typeName, zero)
	mu.Lock()
	internalOnly[typeName] = true
	mu.Unlock()
}

// IsRegistered reports whether typeName has a registry entry.
func IsRegistered(typeName string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := types[typeName]
	return ok
}

// Encode builds the wire Frame for payload addressed to receiver, stamped
// with the given sender identity. Fails with ErrUnregisteredType if
// payload's type was never registered.
func Encode(payload bollywood.Message, receiver, senderActor, senderEndpoint string) (*Frame, error) {
	t := reflect.TypeOf(payload)

	mu.RLock()
	name, ok := typeNames[t]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredType, t)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: encode %s: %w", name, err)
	}

	return &Frame{
		MessageType:    name,
		Receiver:       receiver,
		SenderActor:    senderActor,
		SenderEndpoint: senderEndpoint,
		Message:        raw,
	}, nil
}

// Decode rehydrates frame.Message into the type registered for
// frame.MessageType. Returns ErrUnknownType, ErrInternalType, or
// ErrDecodeFailed (wrapped with a diagnostic) on failure. ErrUnknownType
// and ErrDecodeFailed correspond to the unknown-type and decode-failure
// Reject triggers; ErrInternalType marks a peer-originated Start/Shutdown,
// which the receiver discards without a Reject.
func Decode(frame *Frame) (bollywood.Message, error) {
	mu.RLock()
	t, ok := types[frame.MessageType]
	internal := internalOnly[frame.MessageType]
	mu.RUnlock()

	if !ok {
		return nil, ErrUnknownType
	}
	if internal {
		return nil, ErrInternalType
	}

	ptr := reflect.New(t)
	if len(frame.Message) > 0 {
		if err := json.Unmarshal(frame.Message, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
	}
	return ptr.Elem().Interface(), nil
}
