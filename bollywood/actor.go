package bollywood

// Actor processes messages sequentially, one Receive call per message.
type Actor interface {
	Receive(ctx Context)
}

// ActorFunc adapts a plain function to the Actor interface.
type ActorFunc func(ctx Context)

func (f ActorFunc) Receive(ctx Context) { f(ctx) }
