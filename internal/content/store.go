package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/logging"
)

// ResourceName is the content document's location relative to the site root.
const ResourceName = "data/content.json"

// ErrLoad classifies every failure to obtain a usable Document.
var ErrLoad = errors.New("content not loaded")

// ResourcePath returns the path a page depth directories below the site root
// uses to reach the content document.
func ResourcePath(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("../", depth) + ResourceName
}

// Store loads the content document for one page. It does not cache: every
// Load re-fetches, so callers load at most once per page.
type Store struct {
	fetcher Fetcher
	depth   int
	log     logrus.FieldLogger
}

// NewStore creates a Store for a page at the given depth below the site root.
func NewStore(f Fetcher, depth int, log logrus.FieldLogger) *Store {
	return &Store{fetcher: f, depth: depth, log: logging.Or(log)}
}

// Depth returns the page depth the store was declared with.
func (s *Store) Depth() int { return s.depth }

// Load fetches and decodes the content document. Any transport or parse
// failure is logged and returned wrapped in ErrLoad.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	ref := ResourcePath(s.depth)

	data, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		s.log.WithError(err).WithField("resource", ref).Error("Error loading content")
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrLoad, ref, err)
	}

	doc, err := Parse(data)
	if err != nil {
		s.log.WithError(err).WithField("resource", ref).Error("Error loading content")
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	s.log.WithFields(logrus.Fields{
		"resource": ref,
		"selected": len(doc.SelectedWork.Projects),
		"personal": len(doc.PersonalWork.Projects),
		"details":  len(doc.ProjectDetails),
	}).Debug("Content loaded")
	return doc, nil
}

// Parse decodes a content document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing content document: %w", err)
	}
	return &doc, nil
}
