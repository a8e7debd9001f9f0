// Package site binds page view models to HTML and serves the portfolio over
// HTTP: the three pages, the password form flow and the site's static files.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/accent"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/page"
	"github.com/ziadkadry99/folio/internal/render"
)

// ErrorTimeout is how long the wrong-password message stays visible.
const ErrorTimeout = 3 * time.Second

// Options configures a Site.
type Options struct {
	// Assets serves static files. Nil disables static serving.
	Assets *Assets
	// States builds the per-request stores.
	States Stores
	// LiveReload is the websocket path pages connect to for reloads. Empty
	// leaves the client script out.
	LiveReload string
}

// Site serves the portfolio pages.
type Site struct {
	controller *page.Controller
	opts       Options
	pages      map[page.ID]*template.Template
	log        logrus.FieldLogger
}

// document is what every page template executes against.
type document struct {
	Page         page.ID
	Root         string
	Self         string
	LiveReload   string
	ErrorTimeout int64
	View         any
}

var funcs = template.FuncMap{
	"background": func(c accent.Color) template.CSS {
		return template.CSS("background-color: " + c.Value)
	},
}

// New parses the page templates and returns a Site.
func New(controller *page.Controller, opts Options, log logrus.FieldLogger) (*Site, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Site{
		controller: controller,
		opts:       opts,
		pages:      pages,
		log:        logging.Or(log),
	}, nil
}

func parsePages() (map[page.ID]*template.Template, error) {
	layout, err := template.New("layout").Funcs(funcs).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	bodies := map[page.ID]string{
		page.Home:     homeTemplate,
		page.Password: passwordTemplate,
		page.Detail:   detailTemplate,
	}
	pages := make(map[page.ID]*template.Template, len(bodies))
	for id, body := range bodies {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.Parse(body); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", id, err)
		}
		pages[id] = t
	}
	return pages, nil
}

// RegisterRoutes mounts the pages and the static file fallback.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	for _, id := range page.All() {
		r.Get(id.Path(), s.pageHandler(id))
	}
	r.Post(page.Password.Path(), s.handlePasswordSubmit)
	r.Get("/*", s.handleFallback)
	r.Head("/*", s.handleFallback)
}

func (s *Site) pageHandler(id page.ID) http.HandlerFunc {
	switch id {
	case page.Home:
		return s.handleHome
	case page.Password:
		return s.handlePasswordForm
	case page.Detail:
		return s.handleDetail
	default:
		return http.NotFound
	}
}

// handleFallback serves pages reached through a non-canonical path, then
// static files.
func (s *Site) handleFallback(w http.ResponseWriter, r *http.Request) {
	if id := page.Identify(r.URL.Path); id != page.Unknown && r.Method == http.MethodGet {
		s.pageHandler(id)(w, r)
		return
	}
	if s.opts.Assets == nil {
		http.NotFound(w, r)
		return
	}
	s.opts.Assets.ServeHTTP(w, r)
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	view := s.controller.Home(r.Context(), s.opts.States.For(w, r))
	s.render(w, r, page.Home, view)
}

func (s *Site) handlePasswordForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wrong := readFlash(w, r) == flashWrongPassword
	view := s.controller.Password(r.Context(), s.opts.States.For(w, r), q.Get("project"), q.Get("section"), wrong)
	s.render(w, r, page.Password, view)
}

func (s *Site) handlePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	projectID := r.FormValue("project")

	result, err := s.controller.SubmitPassword(r.Context(), s.opts.States.For(w, r), projectID, r.PostFormValue("password"))
	if err != nil {
		s.log.WithError(err).Error("Password submission failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	switch {
	case result.Location != "":
		s.log.WithField("project", projectID).Debug("Unlocked selected work")
		http.Redirect(w, r, result.Location, http.StatusSeeOther)
	case result.WrongPassword:
		setFlash(w, flashWrongPassword)
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
	default:
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
	}
}

func (s *Site) handleDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.controller.Detail(r.Context(), s.opts.States.For(w, r), r.URL.Query().Get("project"))
	if err != nil {
		var redirect *render.Redirect
		if errors.As(err, &redirect) {
			http.Redirect(w, r, redirect.Location, http.StatusFound)
			return
		}
		s.log.WithError(err).Error("Rendering detail page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, page.Detail, view)
}

// render executes the page into a buffer so a template failure never leaves
// a half-written response.
func (s *Site) render(w http.ResponseWriter, r *http.Request, id page.ID, view any) {
	doc := document{
		Page:         id,
		Root:         strings.Repeat("../", id.Depth()),
		Self:         r.URL.RequestURI(),
		LiveReload:   s.opts.LiveReload,
		ErrorTimeout: ErrorTimeout.Milliseconds(),
		View:         view,
	}

	var buf bytes.Buffer
	if err := s.pages[id].ExecuteTemplate(&buf, "layout", doc); err != nil {
		s.log.WithError(err).WithField("page", id.String()).Error("Template execution failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
