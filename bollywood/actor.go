package bollywood

// Message is an opaque, user-defined payload carried by an Envelope. Any
// Go value can be a Message; values that need to cross the wire must also
// be registered with the wire package under their type name.
type Message interface{}

// Actor is a unit of state processed sequentially by a single worker.
// Unlike a conventional actor interface with a single Receive method,
// handlers here are discovered per message type by the process loop: a
// payload of type T dispatches to a method named On<T> taking a single
// Context argument, if the actor declares one. An actor with no On<T>
// method for some T simply has no handler for T (see Manager's dispatch
// and no-handler policy). Actor is intentionally an empty method set so
// any Go value can be registered without boilerplate.
type Actor interface{}

