package bollywood

// Producer creates a new instance of an Actor.
type Producer func() Actor

// Props describes how to create an actor.
type Props struct {
	producer Producer
}

func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) Produce() Actor {
	return p.producer()
}
