package screens

import (
	"context"

	"github.com/diewo77/gestion-commandes/i18n"
	"github.com/diewo77/gestion-commandes/internal/session"
)

// AuthScreen logs in or registers, depending on Register.
type AuthScreen struct {
	auth     session.Authenticator
	deps     Deps
	Register bool
}

func NewAuthScreen(auth session.Authenticator, deps Deps) *AuthScreen {
	return &AuthScreen{auth: auth, deps: deps.withDefaults()}
}

// ToggleMode switches between login and registration.
func (s *AuthScreen) ToggleMode() { s.Register = !s.Register }

func (s *AuthScreen) Submit(ctx context.Context, email, password string) error {
	var err error
	if s.Register {
		err = s.deps.Session.Register(ctx, s.auth, email, password)
	} else {
		err = s.deps.Session.Login(ctx, s.auth, email, password)
	}
	if err != nil {
		s.deps.failWith(err, "auth.failed")
		return err
	}
	if s.Register {
		s.deps.info("auth.register_ok")
	} else {
		s.deps.info("auth.login_ok")
	}
	return nil
}

// HomeScreen greets the logged-in user.
type HomeScreen struct {
	deps Deps
}

func NewHomeScreen(deps Deps) *HomeScreen { return &HomeScreen{deps: deps.withDefaults()} }

func (s *HomeScreen) Open() error {
	if err := s.deps.Session.Guard(session.HomeRoute); err != nil {
		s.deps.fail("auth.required")
		return err
	}
	return nil
}

func (s *HomeScreen) Greeting() string {
	email, _ := s.deps.Session.Identity()
	return i18n.Tf(s.deps.Lang, "home.welcome", email)
}

// Logout ends the session; the next guarded route redirects to login.
func (s *HomeScreen) Logout() {
	s.deps.Session.Logout()
	s.deps.info("home.logout")
}
