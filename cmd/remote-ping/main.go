// Command remote-ping is the active half of a two-process ping/pong
// exchange: it connects to a remote pong endpoint and drives five rounds
// of Ping/Pong over the wire before shutting down.
package main

import (
	"log"
	"os"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/internal/config"
	"github.com/lguibr/actormesh/internal/demo"
	"github.com/lguibr/actormesh/remote"
	"github.com/lguibr/actormesh/wire"
)

func main() {
	cfg := config.FromEnv()
	localEndpoint := cfg.LocalEndpoint
	remoteEndpoint := "tcp://localhost:5000"
	if len(os.Args) > 1 {
		localEndpoint = os.Args[1]
	}
	if len(os.Args) > 2 {
		remoteEndpoint = os.Args[2]
	}

	wire.Register("Ping", demo.Ping{})
	wire.Register("Pong", demo.Pong{})

	manager := bollywood.New(localEndpoint)
	sender := remote.NewSender(localEndpoint)
	receiver := remote.NewReceiver("$receiver", localEndpoint, manager, sender)

	if _, err := manager.Register("$receiver", receiver); err != nil {
		log.Fatalf("remote-ping: register $receiver: %v", err)
	}

	pongRef := bollywood.NewRemoteReference("pong", remoteEndpoint, sender)
	if _, err := manager.Register("ping", demo.NewPingActor(pongRef, 5)); err != nil {
		log.Fatalf("remote-ping: register ping: %v", err)
	}

	manager.OnShutdown(func() {
		if err := sender.Close(); err != nil {
			log.Printf("remote-ping: sender close: %v", err)
		}
	})

	manager.Init()
	manager.Run()
	manager.End()
}
