// Command pingpong runs a local ping/pong exchange: two actors registered
// in the same Manager, ping driving five rounds before tripping shutdown.
package main

import (
	"log"

	"github.com/lguibr/actormesh/bollywood"
	"github.com/lguibr/actormesh/internal/demo"
)

func main() {
	manager := bollywood.New("")

	pongRef, err := manager.Register("pong", &demo.PongActor{})
	if err != nil {
		log.Fatalf("pingpong: register pong: %v", err)
	}
	if _, err := manager.Register("ping", demo.NewPingActor(pongRef, 5)); err != nil {
		log.Fatalf("pingpong: register ping: %v", err)
	}

	manager.Init()
	manager.Run()
	manager.End()
}
