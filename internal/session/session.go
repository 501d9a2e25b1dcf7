// Package session holds who is logged in, in memory only.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diewo77/gestion-commandes/internal/client"
)

// Routes of the login entry point and of the authenticated area.
const (
	LoginRoute = "/(auth)"
	HomeRoute  = "/(tabs)"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

var ErrUnauthenticated = errors.New("session: authentication required")

// RedirectError tells the caller to navigate to To instead of From.
type RedirectError struct {
	From string
	To   string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("session: %s requires login, redirect to %s", e.From, e.To)
}

func (e *RedirectError) Is(target error) bool { return target == ErrUnauthenticated }

// Authenticator performs the server side of login and registration.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (client.Identity, error)
	Register(ctx context.Context, email, password string) (client.Identity, error)
}

// Session moves between Anonymous and Authenticated only through its
// methods. The zero value is anonymous and ready to use.
type Session struct {
	mu       sync.RWMutex
	identity string
	token    string
	state    State
}

func New() *Session { return &Session{} }

// Login authenticates and, only on a confirmed success, stores the identity.
// Any failure leaves the session unchanged.
func (s *Session) Login(ctx context.Context, a Authenticator, email, password string) error {
	id, err := a.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(id)
	return nil
}

// Register creates the account and logs in with it.
func (s *Session) Register(ctx context.Context, a Authenticator, email, password string) error {
	id, err := a.Register(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(id)
	return nil
}

func (s *Session) establish(id client.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity, s.token, s.state = id.Email, id.Token, Authenticated
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity, s.token, s.state = "", "", Anonymous
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity returns the logged-in email.
func (s *Session) Identity() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.state == Authenticated
}

// Token implements client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Guard allows route when authenticated and otherwise returns a
// *RedirectError to LoginRoute.
func (s *Session) Guard(route string) error {
	if s.State() == Authenticated {
		return nil
	}
	return &RedirectError{From: route, To: LoginRoute}
}
