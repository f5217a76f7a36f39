package bollywood

// Context is handed to an Actor for each message.
type Context interface {
	Engine() *Engine
	Self() *PID
	// Sender is nil for messages sent from outside the actor system.
	Sender() *PID
	Message() interface{}
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
