package remote

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/internal/logging"
	"github.com/lguibr/actormesh/wire"
)

// Receiver is the inbound transport. It is itself a bollywood.Actor
// (registered under a well-known name, conventionally "$receiver") so it
// participates in Start/Shutdown like any other actor: OnStart opens the
// listener, OnShutdown closes it so no new frames are accepted before the
// worker exits. Each accepted connection is read by its own goroutine,
// forwarding decoded frames to whichever local actor the frame's
// receiver field names.
type Receiver struct {
	name     string
	endpoint string
	manager  *bollywood.Manager
	outbound bollywood.OutboundTransport
	logger   *log.Logger

	mu       sync.Mutex
	server   *http.Server
	stopping bool
}

// NewReceiver binds to endpoint and resolves incoming frames' receiver
// field against manager. outbound is used to construct the remote
// Reference attached to decoded envelopes (so handlers can reply) and to
// route Reject back to a frame's sender_endpoint/sender_actor.
func NewReceiver(name, endpoint string, manager *bollywood.Manager, outbound bollywood.OutboundTransport) *Receiver {
	return &Receiver{
		name:     name,
		endpoint: endpoint,
		manager:  manager,
		outbound: outbound,
		logger:   logging.New("remote:recv:" + name),
	}
}

// OnStart implements the Start handler: it begins listening for inbound
// websocket connections.
func (r *Receiver) OnStart(ctx bollywood.Context) {
	addr, err := listenAddr(r.endpoint)
	if err != nil {
		r.logger.Printf("cannot start: %v", err)
		return
	}

	mux := http.NewServeMux()
	mux.Handle(wirePath, websocket.Handler(r.handleConn))

	r.mu.Lock()
	r.server = &http.Server{Addr: addr, Handler: mux}
	srv := r.server
	r.mu.Unlock()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Printf("listen error: %v", err)
		}
	}()
}

// OnShutdown implements the Shutdown handler: it stops accepting new
// frames before the actor returns.
func (r *Receiver) OnShutdown(ctx bollywood.Context) {
	r.mu.Lock()
	r.stopping = true
	srv := r.server
	r.mu.Unlock()
	if srv != nil {
		_ = srv.Close()
	}
}

func (r *Receiver) handleConn(ws *websocket.Conn) {
	defer ws.Close()
	for {
		r.mu.Lock()
		stopping := r.stopping
		r.mu.Unlock()
		if stopping {
			return
		}

		var frame wire.Frame
		if err := websocket.JSON.Receive(ws, &frame); err != nil {
			return
		}
		r.mu.Lock()
		stopping = r.stopping
		r.mu.Unlock()
		if stopping {
			return
		}
		r.dispatch(&frame)
	}
}

// dispatch implements the four Reject triggers in order: unknown type,
// unknown receiver, decode failure, then (inside bollywood.process, once
// delivered) no handler.
func (r *Receiver) dispatch(frame *wire.Frame) {
	sender := r.senderReference(frame)

	if !wire.IsRegistered(frame.MessageType) {
		r.reject(sender, frame.MessageType, fmt.Sprintf("Unknown message type: %s", frame.MessageType))
		return
	}

	target, ok := r.manager.Resolve(frame.Receiver)
	if !ok {
		r.reject(sender, frame.MessageType, fmt.Sprintf("Unknown receiver: %s", frame.Receiver))
		return
	}

	payload, err := wire.Decode(frame)
	if err != nil {
		if errors.Is(err, wire.ErrInternalType) {
			// Peer-originated Start/Shutdown: silently discarded.
			return
		}
		r.reject(sender, frame.MessageType, fmt.Sprintf("Failed to deserialize %s: %v", frame.MessageType, err))
		return
	}

	if err := target.DeliverFromRemote(payload, sender); err != nil {
		r.logger.Printf("failed delivering %s to %s: %v", frame.MessageType, frame.Receiver, err)
	}
}

func (r *Receiver) senderReference(frame *wire.Frame) *bollywood.Reference {
	if frame.SenderEndpoint == "" {
		return nil
	}
	return bollywood.NewRemoteReference(frame.SenderActor, frame.SenderEndpoint, r.outbound)
}

// reject sends a Reject back to sender, or drops it with a log line if
// sender is nil (empty sender_endpoint). Rejects are never themselves
// reported if their own delivery fails, so the error from Send is only
// logged, not rejected again.
func (r *Receiver) reject(sender *bollywood.Reference, messageType, reason string) {
	if sender == nil {
		r.logger.Printf("dropping reject (no sender_endpoint): %s", reason)
		return
	}
	payload := bollywood.Reject{MessageType: messageType, Reason: reason, RejectedBy: r.name}
	if err := sender.Send(payload, nil); err != nil {
		r.logger.Printf("failed to send reject to %s: %v", sender.Endpoint(), err)
	}
}
