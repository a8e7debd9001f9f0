// Package auth implements the shared-password gate in front of the selected
// work section. It is not a security boundary: the password ships in the
// content document and the unlock lives in session cookies.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/kv"
	"github.com/ziadkadry99/folio/internal/logging"
)

const (
	// AuthenticatedKey holds "true" while unlocked.
	AuthenticatedKey = "authenticated"
	// AuthTimeKey holds the unlock time in epoch milliseconds.
	AuthTimeKey = "authTime"

	// DefaultWindow is how long an unlock stays valid.
	DefaultWindow = time.Hour
)

// ErrWrongPassword is returned by Submit when the password does not match.
var ErrWrongPassword = errors.New("wrong password")

// Gate tracks whether the viewer unlocked protected content within a rolling
// window. Two states: locked and unlocked. A stale or partial record is
// cleared when observed.
type Gate struct {
	session kv.Store
	window  time.Duration
	now     func() time.Time
	log     logrus.FieldLogger
}

// Option configures a Gate.
type Option func(*Gate)

// WithWindow overrides DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.window = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Gate) { g.log = l }
}

// NewGate returns a Gate persisting to a session-scoped store.
func NewGate(session kv.Store, opts ...Option) *Gate {
	g := &Gate{session: session, window: DefaultWindow, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	g.log = logging.Or(g.log)
	return g
}

// Window returns the unlock lifetime.
func (g *Gate) Window() time.Duration { return g.window }

// IsAuthenticated reports whether a valid unlock exists. Otherwise it clears
// whatever is persisted and reports false.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	if g.valid(ctx) {
		return true
	}
	if err := g.Clear(ctx); err != nil {
		g.log.WithError(err).Warn("clearing expired authentication")
	}
	return false
}

func (g *Gate) valid(ctx context.Context) bool {
	flag, ok, err := g.session.Get(ctx, AuthenticatedKey)
	if err != nil || !ok || flag != "true" {
		return false
	}
	raw, ok, err := g.session.Get(ctx, AuthTimeKey)
	if err != nil || !ok {
		return false
	}
	at, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	elapsed := g.now().UnixMilli() - at
	return elapsed < g.window.Milliseconds()
}

// Grant records an unlock at the current time.
func (g *Gate) Grant(ctx context.Context) error {
	if err := g.session.Set(ctx, AuthenticatedKey, "true"); err != nil {
		return err
	}
	return g.session.Set(ctx, AuthTimeKey, strconv.FormatInt(g.now().UnixMilli(), 10))
}

// Clear removes both persisted fields.
func (g *Gate) Clear(ctx context.Context) error {
	return errors.Join(
		g.session.Delete(ctx, AuthenticatedKey),
		g.session.Delete(ctx, AuthTimeKey),
	)
}

// Submit checks password against the section's password and grants on a
// match. A mismatch writes nothing and returns ErrWrongPassword.
func (g *Gate) Submit(ctx context.Context, section content.Section, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(section.Password)) != 1 {
		return ErrWrongPassword
	}
	return g.Grant(ctx)
}
