package screens

import (
	"context"

	"github.com/diewo77/gestion-commandes/i18n"
	"github.com/diewo77/gestion-commandes/internal/confirm"
)

// confirmation exposes a screen's gate to the front-end.
type confirmation struct {
	gate confirm.Gate
	lang string
}

// Confirm runs the staged action.
func (c *confirmation) Confirm(ctx context.Context) error { return c.gate.Confirm(ctx) }

// Cancel drops the staged action; visible state is left as it was.
func (c *confirmation) Cancel() bool { return c.gate.Cancel() }

func (c *confirmation) Pending() (confirm.Intent, bool) { return c.gate.Pending() }

// Prompt is the question to ask, or "" when nothing is staged.
func (c *confirmation) Prompt() string {
	in, ok := c.gate.Pending()
	if !ok {
		return ""
	}
	return i18n.Tf(c.lang, "confirm."+string(in.Action), in.Target)
}
