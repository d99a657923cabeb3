package bollywood

import "log"

// Context is handed to a handler invocation: who's processing the
// message, who sent it, and the message itself, plus the back-handle to
// the owning Manager.
type Context interface {
	// Manager returns the Manager that owns the actor processing this
	// message.
	Manager() *Manager
	// Self returns the Reference of the actor processing this message.
	Self() *Reference
	// Sender returns the Reference of the sending actor, or nil if the
	// message had no sender (e.g. Start/Shutdown).
	Sender() *Reference
	// Message returns the payload being processed.
	Message() Message
	// Reply fills the synchronous reply sink if one is set, otherwise
	// sends response back to Sender, otherwise drops it with a log line.
	Reply(response Message)
}

type context struct {
	manager  *Manager
	self     *Reference
	sender   *Reference
	message  Message
	envelope *Envelope
	replied  bool
}

func (c *context) Manager() *Manager { return c.manager }
func (c *context) Self() *Reference  { return c.self }
func (c *context) Sender() *Reference {
	return c.sender
}
func (c *context) Message() Message { return c.message }

func (c *context) Reply(response Message) {
	if c.envelope.replySink != nil {
		if c.replied {
			log.Printf("bollywood: reply_sink for %s already filled, dropping second reply", c.self.Name())
			return
		}
		c.replied = true
		c.envelope.replySink <- response
		return
	}
	if c.sender != nil {
		if err := c.sender.Send(response, c.self); err != nil {
			log.Printf("bollywood: reply from %s to %s failed: %v", c.self.Name(), c.sender.Name(), err)
		}
		return
	}
	log.Printf("bollywood: %s has no sender or reply sink for %T, reply dropped", c.self.Name(), c.message)
}
