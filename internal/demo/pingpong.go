// Package demo implements a minimal ping/pong exchange. It exists only to
// drive cmd/pingpong, cmd/remote-ping, and cmd/remote-pong.
package demo

import (
	"log"

	"github.com/lguibr/actormesh/bollywood"
)

// Ping carries the current round count from ping to pong.
type Ping struct {
	Count int
}

// Pong carries the round count back from pong to ping.
type Pong struct {
	Count int
}

// PongActor replies to every Ping with a Pong of the same count - it
// never initiates anything and never terminates the run on its own.
type PongActor struct{}

// OnPing implements the Ping handler.
func (a *PongActor) OnPing(ctx bollywood.Context) {
	ping := ctx.Message().(Ping)
	log.Printf("pong: received Ping{%d}", ping.Count)
	ctx.Reply(Pong{Count: ping.Count})
}

// PingActor drives the exchange: on Start it sends Ping{1} to target, and
// on every Pong it re-sends Ping{n+1} until n reaches goal, at which point
// it trips the Manager's termination latch.
type PingActor struct {
	target *bollywood.Reference
	goal   int
}

// NewPingActor builds a PingActor that pings target up to goal rounds.
func NewPingActor(target *bollywood.Reference, goal int) *PingActor {
	return &PingActor{target: target, goal: goal}
}

// OnStart implements the Start handler.
func (a *PingActor) OnStart(ctx bollywood.Context) {
	if err := a.target.Send(Ping{Count: 1}, ctx.Self()); err != nil {
		log.Printf("ping: failed to send initial Ping: %v", err)
	}
}

// OnPong implements the Pong handler.
func (a *PingActor) OnPong(ctx bollywood.Context) {
	pong := ctx.Message().(Pong)
	log.Printf("ping: received Pong{%d}", pong.Count)
	if pong.Count >= a.goal {
		ctx.Manager().GetHandle().Terminate()
		return
	}
	if err := a.target.Send(Ping{Count: pong.Count + 1}, ctx.Self()); err != nil {
		log.Printf("ping: failed to send Ping{%d}: %v", pong.Count+1, err)
	}
}
