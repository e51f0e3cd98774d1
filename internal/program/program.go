// Package program is the cooperative message loop the pages run on. Updates
// execute one at a time; background work (HTTP calls, timers) runs as a
// command whose result is queued back on the same channel.
package program

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Msg is an event delivered to an update function.
type Msg = any

// Cmd is a suspended piece of work. It may block; its result message is fed
// back into the loop. A nil result is discarded.
type Cmd func(ctx context.Context) Msg

// Tick delivers msg after d has elapsed, or nothing if the loop shuts down
// first. Pages use it for the slow-load threshold.
func Tick(d time.Duration, msg Msg) Cmd {
	return func(ctx context.Context) Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(d):
			return msg
		}
	}
}

// Updater is the root model driven by the loop.
type Updater interface {
	Update(msg Msg) []Cmd
}

// Program serializes updates over a single FIFO message channel and runs
// commands on their own goroutines.
type Program struct {
	root     Updater
	msgs     chan Msg
	onUpdate func()
	log      logrus.FieldLogger
}

// New builds a program around the root updater. onUpdate, if non-nil, runs
// after every update (the render hook); it must not dispatch synchronously.
func New(root Updater, onUpdate func(), logger logrus.FieldLogger) *Program {
	return &Program{
		root:     root,
		msgs:     make(chan Msg, 64),
		onUpdate: onUpdate,
		log:      logger.WithField("component", "program"),
	}
}

// Send queues a message from an external source (e.g. the history observer).
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	p.msgs <- msg
}

// Dispatch starts the given commands.
func (p *Program) Dispatch(ctx context.Context, cmds []Cmd) {
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		go func(cmd Cmd) {
			if msg := cmd(ctx); msg != nil {
				select {
				case p.msgs <- msg:
				case <-ctx.Done():
				}
			}
		}(cmd)
	}
}

// Run serves messages until the context is cancelled.
func (p *Program) Run(ctx context.Context) error {
	p.log.Info("Message loop started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info("Message loop stopped")
			return ctx.Err()
		case msg := <-p.msgs:
			cmds := p.root.Update(msg)
			p.Dispatch(ctx, cmds)
			if p.onUpdate != nil {
				p.onUpdate()
			}
		}
	}
}
