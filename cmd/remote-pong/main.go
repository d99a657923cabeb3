// Command remote-pong is the passive half of a two-process ping/pong
// exchange: it listens on a local endpoint, registers "pong" behind a
// receiver actor, and answers every Ping over the wire until terminated.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/internal/config"
	"github.com/lguibr/actormesh/internal/demo"
	"github.com/lguibr/actormesh/remote"
	"github.com/lguibr/actormesh/wire"
)

func main() {
	cfg := config.FromEnv()
	if len(os.Args) > 1 {
		cfg.LocalEndpoint = os.Args[1]
	}

	wire.Register("Ping", demo.Ping{})
	wire.Register("Pong", demo.Pong{})

	manager := bollywood.New(cfg.LocalEndpoint)
	sender := remote.NewSender(cfg.LocalEndpoint)
	receiver := remote.NewReceiver("$receiver", cfg.LocalEndpoint, manager, sender)

	if _, err := manager.Register("$receiver", receiver); err != nil {
		log.Fatalf("remote-pong: register $receiver: %v", err)
	}
	if _, err := manager.Register("pong", &demo.PongActor{}); err != nil {
		log.Fatalf("remote-pong: register pong: %v", err)
	}

	manager.OnShutdown(func() {
		if err := sender.Close(); err != nil {
			log.Printf("remote-pong: sender close: %v", err)
		}
	})

	manager.Init()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		manager.GetHandle().Terminate()
	}()

	log.Printf("remote-pong: listening on %s", cfg.LocalEndpoint)
	manager.Run()
	manager.End()
}
