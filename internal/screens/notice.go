// Package screens drives the list, form and confirmation workflows of each
// screen. Controllers render nothing: a front-end reads their state and
// shows the notices they emit.
package screens

import (
	"errors"
	"log/slog"

	"github.com/diewo77/gestion-commandes/i18n"
	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/session"
)

type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a transient message for the user.
type Notice struct {
	Level Level
	Text  string
}

type Notifier func(Notice)

// Deps are shared by every controller.
type Deps struct {
	Session *session.Session
	Lang    string
	Notify  Notifier
	Logger  *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Session == nil {
		d.Session = session.New()
	}
	if d.Lang == "" {
		d.Lang = i18n.DefaultLang
	}
	if d.Notify == nil {
		d.Notify = func(Notice) {}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	return d
}

func (d Deps) info(code string, args ...any) {
	d.Notify(Notice{Level: LevelInfo, Text: i18n.Tf(d.Lang, code, args...)})
}

func (d Deps) fail(code string) {
	d.Notify(Notice{Level: LevelError, Text: i18n.T(d.Lang, code)})
}

// failWith surfaces err as one notice. Validation and transport failures
// use fixed texts; server failures prefer the server's own message.
func (d Deps) failWith(err error, fallback string) {
	d.Logger.Warn("action failed", "err", err)
	var e *client.Error
	if !errors.As(err, &e) {
		d.fail(fallback)
		return
	}
	switch e.Kind {
	case client.KindValidation:
		d.fail("form.incomplete")
	case client.KindNetwork:
		d.fail("error.network")
	default:
		switch {
		case e.Message != "" && e.Message != e.Code:
			d.Notify(Notice{Level: LevelError, Text: e.Message})
		case e.Code == client.CodeNotFound:
			d.fail("error.not_found")
		case e.Code == client.CodeAlreadyExists:
			d.fail("error.exists")
		default:
			d.fail(fallback)
		}
	}
}
