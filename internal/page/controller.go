package page

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/accent"
	"github.com/ziadkadry99/folio/internal/auth"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/kv"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/render"
)

// State is one visitor's storage for the duration of a page load.
type State struct {
	Durable kv.Store
	Session kv.Store
}

// Config tunes a Controller.
type Config struct {
	// AuthWindow overrides auth.DefaultWindow when positive.
	AuthWindow time.Duration
	// Sanitizer, when set, filters rendered body HTML.
	Sanitizer render.Sanitizer
	// Now overrides the gate's clock in tests.
	Now func() time.Time
}

// Controller builds page view models from the content origin.
type Controller struct {
	origin content.Origin
	cfg    Config
	log    logrus.FieldLogger
}

// NewController creates a Controller serving content from origin.
func NewController(origin content.Origin, cfg Config, log logrus.FieldLogger) *Controller {
	return &Controller{origin: origin, cfg: cfg, log: logging.Or(log)}
}

// HomeView is the homepage model. Loaded is false when the content document
// could not be obtained; the grids are then empty.
type HomeView struct {
	Accent   accent.Color
	Loaded   bool
	Selected []render.Thumbnail
	Personal []render.Thumbnail
}

// PasswordView is the password page model.
type PasswordView struct {
	Accent        accent.Color
	ProjectID     string
	Section       string
	WrongPassword bool
	HomeHref      string
}

// DetailView is the project detail page model.
type DetailView struct {
	Accent   accent.Color
	HomeHref string
	*render.RenderedDetail
}

// Home rotates the accent for a new session and renders both grids.
func (c *Controller) Home(ctx context.Context, st State) *HomeView {
	rotator := accent.NewRotator(st.Durable, st.Session, c.log)
	if err := rotator.RotateOnHomeVisit(ctx, true); err != nil {
		c.log.WithError(err).Warn("Accent rotation failed")
	}

	view := &HomeView{
		Accent:   rotator.Background(ctx),
		Selected: []render.Thumbnail{},
		Personal: []render.Thumbnail{},
	}

	doc, err := c.load(ctx, Home)
	if err != nil {
		return view
	}
	view.Loaded = true
	view.Selected = render.Thumbnails(doc.SelectedWork, true)
	view.Personal = render.Thumbnails(doc.PersonalWork, false)
	return view
}

// Password renders the password form for projectID.
func (c *Controller) Password(ctx context.Context, st State, projectID, section string, wrongPassword bool) *PasswordView {
	return &PasswordView{
		Accent:        c.background(ctx, st),
		ProjectID:     projectID,
		Section:       section,
		WrongPassword: wrongPassword,
		HomeHref:      render.HomeHref(Password.Depth()),
	}
}

// SubmitResult is the outcome of a password submission.
type SubmitResult struct {
	// Location is where to send the visitor next, relative to the password
	// page. Empty means stay on the form.
	Location string
	// WrongPassword is set when the password did not match.
	WrongPassword bool
}

// SubmitPassword checks password against the selected-work password. On a
// match the session is unlocked and the visitor is sent to the project's
// detailPage or the default detail page. Without content nothing happens.
func (c *Controller) SubmitPassword(ctx context.Context, st State, projectID, password string) (SubmitResult, error) {
	doc, err := c.load(ctx, Password)
	if err != nil {
		return SubmitResult{}, nil
	}

	gate := c.gate(st)
	if err := gate.Submit(ctx, doc.SelectedWork, password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return SubmitResult{WrongPassword: true}, nil
		}
		return SubmitResult{}, err
	}

	if p, ok := doc.SelectedProject(projectID); ok && p.DetailPage != "" {
		return SubmitResult{Location: p.DetailPage}, nil
	}
	return SubmitResult{Location: render.DetailHref("", projectID)}, nil
}

// Detail renders a project page. It returns a *render.Redirect error when the
// visitor must go elsewhere; a failed content load redirects home.
func (c *Controller) Detail(ctx context.Context, st State, projectID string) (*DetailView, error) {
	// A nil document sends the visitor home like an unknown project.
	doc, _ := c.load(ctx, Detail)

	rendered, err := render.Detail(ctx, projectID, doc, c.gate(st), render.Options{
		Depth:     Detail.Depth(),
		Sanitizer: c.cfg.Sanitizer,
	})
	if err != nil {
		return nil, err
	}
	return &DetailView{
		Accent:         c.background(ctx, st),
		HomeHref:       render.HomeHref(Detail.Depth()),
		RenderedDetail: rendered,
	}, nil
}

func (c *Controller) load(ctx context.Context, id ID) (*content.Document, error) {
	store := content.NewStore(c.origin.At(id.Dir()), id.Depth(), c.log.WithField("page", id.String()))
	return store.Load(ctx)
}

func (c *Controller) gate(st State) *auth.Gate {
	opts := []auth.Option{auth.WithLogger(c.log)}
	if c.cfg.AuthWindow > 0 {
		opts = append(opts, auth.WithWindow(c.cfg.AuthWindow))
	}
	if c.cfg.Now != nil {
		opts = append(opts, auth.WithClock(c.cfg.Now))
	}
	return auth.NewGate(st.Session, opts...)
}

func (c *Controller) background(ctx context.Context, st State) accent.Color {
	return accent.NewRotator(st.Durable, st.Session, c.log).Background(ctx)
}
