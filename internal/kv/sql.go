package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/folio/internal/db"
)

// VisitorCookie names the durable cookie that identifies a browser to the
// SQL-backed store.
const VisitorCookie = "visitor"

// SQL is a durable Store persisted in SQLite, partitioned by visitor.
type SQL struct {
	db        *db.DB
	visitorID string
}

// NewSQL returns a store for one visitor.
func NewSQL(database *db.DB, visitorID string) *SQL {
	return &SQL{db: database, visitorID: visitorID}
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM visitor_state WHERE visitor_id = ? AND key = ?`,
		s.visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitor_state (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		s.visitorID, key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQL) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM visitor_state WHERE visitor_id = ? AND key = ?`,
		s.visitorID, key,
	)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Prune removes visitor state not written since before cutoff and returns
// the number of rows removed.
func Prune(ctx context.Context, database *db.DB, cutoff time.Time) (int64, error) {
	res, err := database.ExecContext(ctx,
		`DELETE FROM visitor_state WHERE updated_at < ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning visitor state: %w", err)
	}
	return res.RowsAffected()
}

// VisitorID returns the visitor id carried by the request, issuing a new
// one (and its durable cookie) when absent or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(DurableMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
	return id
}
