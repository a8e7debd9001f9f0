package kv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ziadkadry99/folio/internal/db"
)

// exercise runs the Store contract against s.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get after Set = %q, %v, %v; want v2, true, nil", v, ok, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("key should be gone after Delete")
	}
	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "never"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	ctx := context.Background()
	m.Set(ctx, "a", "1")
	m.Set(ctx, "b", "2")
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", m.Len())
	}
}

func TestSQL(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	exercise(t, NewSQL(database, "visitor-1"))

	// Visitors are isolated from each other.
	ctx := context.Background()
	a := NewSQL(database, "a")
	b := NewSQL(database, "b")
	a.Set(ctx, "currentColorIndex", "2")
	if _, ok, _ := b.Get(ctx, "currentColorIndex"); ok {
		t.Error("visitor b should not see visitor a's state")
	}
	if v, _, _ := a.Get(ctx, "currentColorIndex"); v != "2" {
		t.Errorf("visitor a value = %q, want 2", v)
	}
}

func TestPrune(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	NewSQL(database, "fresh").Set(ctx, "k", "v")
	if _, err := database.Exec(`INSERT INTO visitor_state (visitor_id, key, value, updated_at) VALUES ('stale', 'k', 'v', '2001-01-01 00:00:00')`); err != nil {
		t.Fatalf("seeding stale row: %v", err)
	}

	n, err := Prune(ctx, database, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}
	if _, ok, _ := NewSQL(database, "fresh").Get(ctx, "k"); !ok {
		t.Error("fresh row should survive pruning")
	}
}

func TestCookiesReadAfterWrite(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	exercise(t, NewCookies(rec, req, CookieOptions{}))
}

func TestCookiesSessionVsDurable(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	NewCookies(rec, req, CookieOptions{Scope: Session}).Set(ctx, "hasRotated", "true")
	NewCookies(rec, req, CookieOptions{Scope: Durable, Secure: true}).Set(ctx, "currentColorIndex", "3")

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}

	session := cookies["hasRotated"]
	if session == nil {
		t.Fatal("session cookie not written")
	}
	if session.MaxAge != 0 || !session.Expires.IsZero() {
		t.Errorf("session cookie must not expire explicitly, got MaxAge=%d Expires=%v", session.MaxAge, session.Expires)
	}

	durable := cookies["currentColorIndex"]
	if durable == nil {
		t.Fatal("durable cookie not written")
	}
	if durable.MaxAge != int(DurableMaxAge/time.Second) {
		t.Errorf("durable MaxAge = %d", durable.MaxAge)
	}
	if !durable.Secure || !durable.HttpOnly {
		t.Error("durable cookie should be Secure and HttpOnly")
	}
}

func TestCookiesReadsRequest(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "authTime", Value: "1700000000000"})
	req.AddCookie(&http.Cookie{Name: "bad", Value: "%zz"})
	rec := httptest.NewRecorder()
	c := NewCookies(rec, req, CookieOptions{})

	v, ok, err := c.Get(ctx, "authTime")
	if err != nil || !ok || v != "1700000000000" {
		t.Errorf("Get(authTime) = %q, %v, %v", v, ok, err)
	}
	if _, ok, _ := c.Get(ctx, "bad"); ok {
		t.Error("undecodable cookie should read as absent")
	}

	// Delete hides the request cookie and expires it on the response.
	c.Delete(ctx, "authTime")
	if _, ok, _ := c.Get(ctx, "authTime"); ok {
		t.Error("deleted key should read as absent")
	}
	var expired bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "authTime" && ck.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("Delete should expire the cookie")
	}
}

func TestVisitorID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	id := VisitorID(rec, req, false)
	if id == "" {
		t.Fatal("expected a new visitor id")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != VisitorCookie || cookies[0].Value != id {
		t.Fatalf("expected visitor cookie %q, got %+v", id, cookies)
	}

	// An existing valid id is reused without a new cookie.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	rec2 := httptest.NewRecorder()
	if got := VisitorID(rec2, req2, false); got != id {
		t.Errorf("VisitorID = %q, want %q", got, id)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Error("no cookie should be set for a known visitor")
	}

	// A malformed id is replaced.
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "not-a-uuid"})
	if got := VisitorID(httptest.NewRecorder(), req3, false); got == "not-a-uuid" {
		t.Error("malformed visitor id should be replaced")
	}
}
