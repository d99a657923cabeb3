package remote

import (
	"fmt"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/wire"
)

// Sender is the outbound transport: it serializes envelopes and publishes
// them to remote endpoints, keeping one logical connection per endpoint
// and creating it lazily.
type Sender struct {
	localEndpoint string

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// NewSender creates an outbound transport that stamps localEndpoint as
// sender_endpoint when the caller's Reference supplies none.
func NewSender(localEndpoint string) *Sender {
	return &Sender{
		localEndpoint: localEndpoint,
		conns:         make(map[string]*websocket.Conn),
	}
}

// LocalEndpoint implements bollywood.OutboundTransport.
func (s *Sender) LocalEndpoint() string { return s.localEndpoint }

// SendTo implements bollywood.OutboundTransport: it encodes payload per
// the wire registry and publishes one frame to endpoint.
func (s *Sender) SendTo(endpoint, receiverName string, payload bollywood.Message, sender *bollywood.Reference) error {
	senderActor, senderEndpoint := "", s.localEndpoint
	if sender != nil {
		senderActor = sender.Name()
		if ep := sender.Endpoint(); ep != "" {
			senderEndpoint = ep
		}
	}

	frame, err := wire.Encode(payload, receiverName, senderActor, senderEndpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeError, err)
	}

	conn, err := s.connFor(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransportError, err)
	}

	s.mu.Lock()
	sendErr := websocket.JSON.Send(conn, frame)
	s.mu.Unlock()
	if sendErr != nil {
		s.dropConn(endpoint)
		return fmt.Errorf("%w: %v", ErrTransportError, sendErr)
	}
	return nil
}

func (s *Sender) connFor(endpoint string) (*websocket.Conn, error) {
	s.mu.Lock()
	if conn, ok := s.conns[endpoint]; ok {
		s.mu.Unlock()
		return conn, nil
	}
	s.mu.Unlock()

	target, err := wsURL(endpoint)
	if err != nil {
		return nil, err
	}
	origin, err := wsURL(s.localEndpoint)
	if err != nil {
		origin = "http://localhost/"
	}

	conn, err := websocket.Dial(target, "", origin)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing, ok := s.conns[endpoint]; ok {
		s.mu.Unlock()
		_ = conn.Close()
		return existing, nil
	}
	s.conns[endpoint] = conn
	s.mu.Unlock()
	return conn, nil
}

func (s *Sender) dropConn(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, endpoint)
}

// Close tears down every outbound connection. Registered with
// Manager.OnShutdown so End releases transport resources.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for endpoint, conn := range s.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.conns, endpoint)
	}
	return firstErr
}

var _ bollywood.OutboundTransport = (*Sender)(nil)
