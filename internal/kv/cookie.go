package kv

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Scope selects the lifetime of cookie-backed values.
type Scope int

const (
	// Session cookies carry no expiry and end with the browser session.
	Session Scope = iota
	// Durable cookies persist across sessions.
	Durable
)

// DurableMaxAge is the lifetime given to durable cookies. Browsers cap
// cookie lifetimes at about 400 days.
const DurableMaxAge = 400 * 24 * time.Hour

// CookieOptions configures a Cookies store.
type CookieOptions struct {
	Scope  Scope
	Path   string
	Secure bool
}

// Cookies is a request-scoped Store over HTTP cookies. Reads see the
// request's cookies overlaid with any writes made earlier in the same
// request, so a read after a write returns the written value.
type Cookies struct {
	w       http.ResponseWriter
	r       *http.Request
	opts    CookieOptions
	pending map[string]*string
}

// NewCookies binds a Cookies store to one request/response pair.
func NewCookies(w http.ResponseWriter, r *http.Request, opts CookieOptions) *Cookies {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &Cookies{w: w, r: r, opts: opts, pending: make(map[string]*string)}
}

// Get implements Store.
func (c *Cookies) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	v, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		// Not something this store wrote; treat as absent.
		return "", false, nil
	}
	return v, true, nil
}

// Set implements Store.
func (c *Cookies) Set(_ context.Context, key, value string) error {
	cookie := c.cookie(key, url.QueryEscape(value))
	if c.opts.Scope == Durable {
		cookie.MaxAge = int(DurableMaxAge / time.Second)
	}
	http.SetCookie(c.w, cookie)
	c.pending[key] = &value
	return nil
}

// Delete implements Store.
func (c *Cookies) Delete(_ context.Context, key string) error {
	cookie := c.cookie(key, "")
	cookie.MaxAge = -1
	http.SetCookie(c.w, cookie)
	c.pending[key] = nil
	return nil
}

func (c *Cookies) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.opts.Path,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.opts.Secure,
	}
}
