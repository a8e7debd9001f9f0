package site

import (
	"net/http"

	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/kv"
	"github.com/ziadkadry99/folio/internal/page"
)

// Stores decides where a visitor's state lives. Session values are always
// session cookies; durable values are long-lived cookies, or rows in DB
// keyed by a visitor cookie when DB is set.
type Stores struct {
	DB     *db.DB
	Secure bool
}

// For returns the stores for one request. Writes become Set-Cookie headers
// on w, so it must be called before the response body is written.
func (s Stores) For(w http.ResponseWriter, r *http.Request) page.State {
	session := kv.NewCookies(w, r, kv.CookieOptions{Scope: kv.Session, Path: "/", Secure: s.Secure})

	var durable kv.Store
	if s.DB != nil {
		durable = kv.NewSQL(s.DB, kv.VisitorID(w, r, s.Secure))
	} else {
		durable = kv.NewCookies(w, r, kv.CookieOptions{Scope: kv.Durable, Path: "/", Secure: s.Secure})
	}
	return page.State{Durable: durable, Session: session}
}
