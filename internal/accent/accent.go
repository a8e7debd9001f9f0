// Package accent rotates the navigation accent color once per browser
// session, cycling deterministically through a fixed palette.
package accent

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/kv"
	"github.com/ziadkadry99/folio/internal/logging"
)

const (
	// IndexKey holds the palette index in the durable store.
	IndexKey = "currentColorIndex"
	// RotatedKey marks, in the session store, that this session rotated.
	RotatedKey = "hasRotated"
)

// Color is one palette entry.
type Color struct {
	Name  string
	Value string
}

// Palette is the fixed rotation order.
var Palette = []Color{
	{Name: "pink", Value: "#E4C3FF"},
	{Name: "skyblue", Value: "#C3FDFF"},
	{Name: "blue", Value: "#49AAFF"},
	{Name: "salmon", Value: "#FF9292"},
}

// Rotator computes and persists the active accent index.
type Rotator struct {
	durable kv.Store
	session kv.Store
	log     logrus.FieldLogger
}

// NewRotator returns a Rotator over a durable and a session-scoped store.
func NewRotator(durable, session kv.Store, log logrus.FieldLogger) *Rotator {
	return &Rotator{durable: durable, session: session, log: logging.Or(log)}
}

// CurrentIndex returns the persisted index, or 0 when it is absent,
// unparsable or outside the palette.
func (r *Rotator) CurrentIndex(ctx context.Context) int {
	raw, ok, err := r.durable.Get(ctx, IndexKey)
	if err != nil {
		r.log.WithError(err).Warn("reading accent index")
		return 0
	}
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= len(Palette) {
		return 0
	}
	return i
}

// NextIndex returns the index that follows CurrentIndex.
func (r *Rotator) NextIndex(ctx context.Context) int {
	return (r.CurrentIndex(ctx) + 1) % len(Palette)
}

// RotateOnHomeVisit advances the index once per session. It does nothing
// unless home is true, and nothing once the session has already rotated.
func (r *Rotator) RotateOnHomeVisit(ctx context.Context, home bool) error {
	if !home {
		return nil
	}
	_, rotated, err := r.session.Get(ctx, RotatedKey)
	if err != nil {
		return err
	}
	if rotated {
		return nil
	}

	next := r.NextIndex(ctx)
	if err := r.durable.Set(ctx, IndexKey, strconv.Itoa(next)); err != nil {
		return err
	}
	if err := r.session.Set(ctx, RotatedKey, "true"); err != nil {
		return err
	}
	r.log.WithFields(logrus.Fields{"index": next, "color": Palette[next].Name}).Debug("accent rotated")
	return nil
}

// Background returns the palette entry the navigation chrome should show.
func (r *Rotator) Background(ctx context.Context) Color {
	return Palette[r.CurrentIndex(ctx)]
}
