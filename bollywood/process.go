package bollywood

import (
	"fmt"
	"log"
	"reflect"
	"runtime/debug"
)

// process is the running instance of a registered actor: its state, its
// mailbox, and the worker goroutine that drains it. A dequeue-dispatch
// loop with panic recovery around each invocation; dispatch itself looks
// up a per-type handler by reflection (On<TypeName>), which is what lets
// the no-handler policy be a runtime decision instead of something every
// actor has to re-implement with its own type switch.
type process struct {
	manager *Manager
	name    string
	ref     *Reference
	actor   Actor
	mailbox *mailbox
	done    chan struct{}
}

func newProcess(m *Manager, name string, actor Actor) *process {
	p := &process{
		manager: m,
		name:    name,
		actor:   actor,
		mailbox: newMailbox(),
		done:    make(chan struct{}),
	}
	p.ref = &Reference{kind: refLocal, name: name, proc: p}
	return p
}

func (p *process) run() {
	defer close(p.done)
	for {
		env := p.mailbox.dequeue()
		_, isShutdown := env.Payload.(Shutdown)
		p.invoke(env)
		if isShutdown {
			return
		}
	}
}

// invoke resolves a handler for env.Payload's type name and calls it,
// recovering from panics so one bad message never takes down the worker.
// An unrecovered handler error must never terminate the worker unless it
// was the Shutdown handler itself - satisfied here because run() always
// returns after a Shutdown envelope regardless of whether invoke panicked.
func (p *process) invoke(env *Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bollywood: actor %q panicked handling %T: %v\n%s", p.name, env.Payload, r, debug.Stack())
		}
	}()

	typeName := reflect.TypeOf(env.Payload).Name()
	method := reflect.ValueOf(p.actor).MethodByName("On" + typeName)
	if !method.IsValid() {
		p.handleMissingHandler(typeName, env)
		return
	}

	ctx := &context{manager: p.manager, self: p.ref, sender: env.Sender, message: env.Payload, envelope: env}
	method.Call([]reflect.Value{reflect.ValueOf(ctx)})
}

func (p *process) handleMissingHandler(typeName string, env *Envelope) {
	if !env.remoteOrigin {
		log.Printf("bollywood: actor %q has no handler for %s, dropping", p.name, typeName)
		return
	}
	if env.Sender == nil {
		log.Printf("bollywood: actor %q has no handler for %s from an unaddressable remote sender, reject dropped", p.name, typeName)
		return
	}
	reject := Reject{MessageType: typeName, Reason: fmt.Sprintf("No handler for %s", typeName), RejectedBy: p.name}
	if err := env.Sender.Send(reject, p.ref); err != nil {
		log.Printf("bollywood: actor %q failed to send reject for %s: %v", p.name, typeName, err)
	}
}
