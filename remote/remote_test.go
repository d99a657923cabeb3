package remote_test

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/remote"
	"github.com/lguibr/actormesh/wire"
)

type RTPing struct{ Count int }
type RTPong struct{ Count int }

func init() {
	wire.Register("RTPing", RTPing{})
	wire.Register("RTPong", RTPong{})
}

func freeEndpoint(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "tcp://" + addr
}

type rtPongActor struct{}

func (rtPongActor) OnRTPing(ctx bollywood.Context) {
	ping := ctx.Message().(RTPing)
	ctx.Reply(RTPong{Count: ping.Count})
}

type rtPingActor struct {
	target *bollywood.Reference
	goal   int

	mu     sync.Mutex
	rounds []int
}

func (a *rtPingActor) OnStart(ctx bollywood.Context) {
	_ = a.target.Send(RTPing{Count: 1}, ctx.Self())
}

func (a *rtPingActor) OnRTPong(ctx bollywood.Context) {
	pong := ctx.Message().(RTPong)
	a.mu.Lock()
	a.rounds = append(a.rounds, pong.Count)
	a.mu.Unlock()
	if pong.Count >= a.goal {
		ctx.Manager().GetHandle().Terminate()
		return
	}
	_ = a.target.Send(RTPing{Count: pong.Count + 1}, ctx.Self())
}

// TestRemotePingPongReachesGoal covers a two-process exchange over real
// websocket connections: ping on one Manager drives five rounds against
// pong registered on a second, independent Manager.
func TestRemotePingPongReachesGoal(t *testing.T) {
	pongEndpoint := freeEndpoint(t)
	pingEndpoint := freeEndpoint(t)

	pongManager := bollywood.New(pongEndpoint)
	pongSender := remote.NewSender(pongEndpoint)
	pongReceiver := remote.NewReceiver("$receiver", pongEndpoint, pongManager, pongSender)
	_, err := pongManager.Register("$receiver", pongReceiver)
	require.NoError(t, err)
	_, err = pongManager.Register("pong", rtPongActor{})
	require.NoError(t, err)
	pongManager.OnShutdown(func() { _ = pongSender.Close() })
	pongManager.Init()
	defer func() {
		pongManager.GetHandle().Terminate()
		pongManager.End()
	}()

	pingManager := bollywood.New(pingEndpoint)
	pingSender := remote.NewSender(pingEndpoint)
	pingReceiver := remote.NewReceiver("$receiver", pingEndpoint, pingManager, pingSender)
	_, err = pingManager.Register("$receiver", pingReceiver)
	require.NoError(t, err)

	remotePong := bollywood.NewRemoteReference("pong", pongEndpoint, pingSender)
	pingActor := &rtPingActor{target: remotePong, goal: 5}
	_, err = pingManager.Register("ping", pingActor)
	require.NoError(t, err)
	pingManager.OnShutdown(func() { _ = pingSender.Close() })

	// Give the pong side's listener a moment to bind before ping dials it.
	time.Sleep(20 * time.Millisecond)
	pingManager.Init()

	done := make(chan struct{})
	go func() {
		pingManager.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("remote ping/pong did not complete in time")
	}
	pingManager.End()

	pingActor.mu.Lock()
	defer pingActor.mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pingActor.rounds)
}

type rejectCollector struct {
	mu       sync.Mutex
	rejects  []bollywood.Reject
	received chan struct{}
}

func newRejectCollector() *rejectCollector {
	return &rejectCollector{received: make(chan struct{}, 8)}
}

func (c *rejectCollector) OnReject(ctx bollywood.Context) {
	c.mu.Lock()
	c.rejects = append(c.rejects, ctx.Message().(bollywood.Reject))
	c.mu.Unlock()
	c.received <- struct{}{}
}

func (c *rejectCollector) waitForReject(t *testing.T) bollywood.Reject {
	t.Helper()
	select {
	case <-c.received:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for Reject")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rejects[len(c.rejects)-1]
}

// sendRawFrame dials serverEndpoint directly and writes a hand-built frame,
// bypassing the Sender/registry so a test can address an unregistered
// message type or an unknown receiver name.
func sendRawFrame(t *testing.T, serverEndpoint string, frame map[string]interface{}) {
	t.Helper()
	host := serverEndpoint[len("tcp://"):]
	url := fmt.Sprintf("ws://%s/actormesh", host)
	origin := "http://localhost/"
	ws, err := websocket.Dial(url, "", origin)
	require.NoError(t, err)
	defer ws.Close()
	require.NoError(t, websocket.JSON.Send(ws, frame))
}

func setupRejectListener(t *testing.T) (clientEndpoint string, collector *rejectCollector, teardown func()) {
	t.Helper()
	clientEndpoint = freeEndpoint(t)
	clientManager := bollywood.New(clientEndpoint)
	clientSender := remote.NewSender(clientEndpoint)
	clientReceiver := remote.NewReceiver("$receiver", clientEndpoint, clientManager, clientSender)
	_, err := clientManager.Register("$receiver", clientReceiver)
	require.NoError(t, err)
	collector = newRejectCollector()
	_, err = clientManager.Register("tester", collector)
	require.NoError(t, err)
	clientManager.OnShutdown(func() { _ = clientSender.Close() })
	clientManager.Init()
	return clientEndpoint, collector, func() {
		clientManager.GetHandle().Terminate()
		clientManager.End()
	}
}

func setupServer(t *testing.T) (serverEndpoint string, teardown func()) {
	t.Helper()
	serverEndpoint = freeEndpoint(t)
	serverManager := bollywood.New(serverEndpoint)
	serverSender := remote.NewSender(serverEndpoint)
	serverReceiver := remote.NewReceiver("$receiver", serverEndpoint, serverManager, serverSender)
	_, err := serverManager.Register("$receiver", serverReceiver)
	require.NoError(t, err)
	_, err = serverManager.Register("pong", rtPongActor{})
	require.NoError(t, err)
	serverManager.OnShutdown(func() { _ = serverSender.Close() })
	serverManager.Init()
	time.Sleep(20 * time.Millisecond)
	return serverEndpoint, func() {
		serverManager.GetHandle().Terminate()
		serverManager.End()
	}
}

// TestRejectUnknownMessageType covers the first Reject trigger: a frame
// naming a message_type the receiving process never registered.
func TestRejectUnknownMessageType(t *testing.T) {
	serverEndpoint, stopServer := setupServer(t)
	defer stopServer()
	clientEndpoint, collector, stopClient := setupRejectListener(t)
	defer stopClient()

	sendRawFrame(t, serverEndpoint, map[string]interface{}{
		"message_type":    "NoSuchMessage",
		"receiver":        "pong",
		"sender_actor":    "tester",
		"sender_endpoint": clientEndpoint,
		"message":         json.RawMessage(`{}`),
	})

	reject := collector.waitForReject(t)
	assert.Equal(t, "NoSuchMessage", reject.MessageType)
	assert.Equal(t, "$receiver", reject.RejectedBy)
}

// TestRejectUnknownReceiver covers the second Reject trigger: a frame
// addressed to a receiver name the process has not registered.
func TestRejectUnknownReceiver(t *testing.T) {
	serverEndpoint, stopServer := setupServer(t)
	defer stopServer()
	clientEndpoint, collector, stopClient := setupRejectListener(t)
	defer stopClient()

	sendRawFrame(t, serverEndpoint, map[string]interface{}{
		"message_type":    "RTPing",
		"receiver":        "no-such-actor",
		"sender_actor":    "tester",
		"sender_endpoint": clientEndpoint,
		"message":         json.RawMessage(`{"Count":1}`),
	})

	reject := collector.waitForReject(t)
	assert.Equal(t, "RTPing", reject.MessageType)
	assert.Contains(t, reject.Reason, "no-such-actor")
}

// TestRejectDecodeFailure covers the third Reject trigger: message_type is
// registered and receiver resolves, but the message body does not unmarshal
// into the registered type.
func TestRejectDecodeFailure(t *testing.T) {
	serverEndpoint, stopServer := setupServer(t)
	defer stopServer()
	clientEndpoint, collector, stopClient := setupRejectListener(t)
	defer stopClient()

	sendRawFrame(t, serverEndpoint, map[string]interface{}{
		"message_type":    "RTPing",
		"receiver":        "pong",
		"sender_actor":    "tester",
		"sender_endpoint": clientEndpoint,
		"message":         json.RawMessage(`{"Count":"not-a-number"}`),
	})

	reject := collector.waitForReject(t)
	assert.Equal(t, "RTPing", reject.MessageType)
	assert.Contains(t, reject.Reason, "Failed to deserialize RTPing")
}

// TestRejectNoHandler covers the fourth Reject trigger: the frame decodes
// cleanly and the receiver actor exists, but that actor declares no
// handler for the decoded payload type.
func TestRejectNoHandler(t *testing.T) {
	serverEndpoint, stopServer := setupServer(t)
	defer stopServer()
	clientEndpoint, collector, stopClient := setupRejectListener(t)
	defer stopClient()

	// rtPongActor only implements OnRTPing; RTPong has no handler there.
	sendRawFrame(t, serverEndpoint, map[string]interface{}{
		"message_type":    "RTPong",
		"receiver":        "pong",
		"sender_actor":    "tester",
		"sender_endpoint": clientEndpoint,
		"message":         json.RawMessage(`{"Count":1}`),
	})

	reject := collector.waitForReject(t)
	assert.Equal(t, "RTPong", reject.MessageType)
	assert.Contains(t, reject.Reason, "No handler for RTPong")
	assert.Equal(t, "pong", reject.RejectedBy)
}
