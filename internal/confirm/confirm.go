// Package confirm stages a destructive action until the user confirms it.
package confirm

import (
	"context"
	"errors"
	"sync"
)

type State int

const (
	Idle State = iota
	Pending
	Executing
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending-confirmation"
	case Executing:
		return "executing"
	default:
		return "idle"
	}
}

type Action string

const (
	ActionDelete Action = "delete"
	ActionEdit   Action = "edit"
	ActionSubmit Action = "submit"
)

// Intent describes the staged action for the confirmation prompt.
type Intent struct {
	Action Action
	Target string
}

var (
	ErrBusy          = errors.New("confirm: an action is already staged")
	ErrNothingStaged = errors.New("confirm: nothing to confirm")
)

// Gate holds at most one staged action. The zero value is idle.
type Gate struct {
	mu     sync.Mutex
	state  State
	intent Intent
	run    func(context.Context) error
}

// Stage records run without executing it.
func (g *Gate) Stage(in Intent, run func(context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Idle {
		return ErrBusy
	}
	g.state, g.intent, g.run = Pending, in, run
	return nil
}

// Confirm executes the staged action and returns to Idle whatever its outcome.
func (g *Gate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	if g.state != Pending {
		g.mu.Unlock()
		return ErrNothingStaged
	}
	g.state = Executing
	run := g.run
	g.mu.Unlock()

	defer g.reset()
	return run(ctx)
}

// Cancel drops the staged action. It reports whether one was pending.
func (g *Gate) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Pending {
		return false
	}
	g.state, g.intent, g.run = Idle, Intent{}, nil
	return true
}

func (g *Gate) Pending() (Intent, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.intent, g.state == Pending
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) reset() {
	g.mu.Lock()
	g.state, g.intent, g.run = Idle, Intent{}, nil
	g.mu.Unlock()
}
