package bollywood

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox and run loop.
type process struct {
	engine   *Engine
	pid      *PID
	actor    Actor
	mailbox  chan *messageEnvelope
	props    *Props
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) closeStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// sendMessage enqueues without blocking; a full mailbox drops the message.
func (p *process) sendMessage(message interface{}, sender *PID) {
	if p.stopped.Load() && !isSystemMessage(message) {
		return
	}

	select {
	case p.mailbox <- &messageEnvelope{Sender: sender, Message: message}:
	default:
		p.engine.log.Warn("Mailbox full, dropping message", "actor", p.pid.ID, "type", fmt.Sprintf("%T", message))
	}
}

func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil)
		}
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error("PANIC recovered in actor", "actor", p.pid.ID, "panic", r, "stack", string(debug.Stack()))
			p.stopped.Store(true)
			p.closeStop()
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actor %s producer returned nil actor", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			p.drain()
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(Stopping{}, nil)
			}
			return

		case envelope := <-p.mailbox:
			switch msg := envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(msg, envelope.Sender)
					p.closeStop()
				}
			case Stopped:
				// Delivered by run's deferred cleanup only.
			default:
				if p.stopped.Load() {
					continue
				}
				p.invokeReceive(envelope.Message, envelope.Sender)
			}
		}
	}
}

// drain delivers messages queued ahead of the stop request, up to and including its Stopping.
func (p *process) drain() {
	for {
		select {
		case envelope := <-p.mailbox:
			switch envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(envelope.Message, envelope.Sender)
				}
				return
			case Stopped:
			default:
				if !p.stopped.Load() {
					p.invokeReceive(envelope.Message, envelope.Sender)
				}
			}
		default:
			return
		}
	}
}

// invokeReceive calls the actor's Receive, recovering panics so one bad message does not
// kill the actor.
func (p *process) invokeReceive(msg interface{}, sender *PID) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: msg,
	}

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error("PANIC recovered in Receive", "actor", p.pid.ID, "message", fmt.Sprintf("%T", msg), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	p.actor.Receive(ctx)
}
