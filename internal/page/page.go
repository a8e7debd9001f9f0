// Package page identifies the portfolio's pages and drives each one: it
// loads content, consults the accent rotator and the auth gate, and returns
// a view model for the presentation layer.
package page

import (
	"path"
	"strings"

	"github.com/ziadkadry99/folio/internal/render"
)

// ID names one of the site's pages.
type ID int

const (
	Unknown ID = iota
	Home
	Password
	Detail
)

func (id ID) String() string {
	switch id {
	case Home:
		return "home"
	case Password:
		return "password"
	case Detail:
		return "detail"
	default:
		return "unknown"
	}
}

// Path is the canonical URL path of the page.
func (id ID) Path() string {
	switch id {
	case Home:
		return "/" + render.HomePage
	case Password:
		return "/" + render.PagesDir + "/" + render.PasswordPage
	case Detail:
		return "/" + render.PagesDir + "/" + render.DetailPage
	default:
		return ""
	}
}

// Dir is the page's directory relative to the site root.
func (id ID) Dir() string {
	switch id {
	case Password, Detail:
		return render.PagesDir
	default:
		return ""
	}
}

// Depth is how many directories below the site root the page sits.
func (id ID) Depth() int {
	if id.Dir() == "" {
		return 0
	}
	return strings.Count(id.Dir(), "/") + 1
}

// Identify maps a request path to a page. The root and /index.html are the
// homepage; the other pages are matched on their full path.
func Identify(p string) ID {
	if p == "" {
		p = "/"
	}
	p = path.Clean("/" + p)
	switch p {
	case "/", Home.Path():
		return Home
	case Password.Path():
		return Password
	case Detail.Path():
		return Detail
	default:
		return Unknown
	}
}

// All lists every known page.
func All() []ID {
	return []ID{Home, Password, Detail}
}
