package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is the root of data/content.json. It is loaded once per page and
// never mutated afterwards.
type Document struct {
	SelectedWork   Section           `json:"selectedWork"`
	PersonalWork   Section           `json:"personalWork"`
	ProjectDetails map[string]Detail `json:"projectDetails"`
}

// Section is one homepage grid. A non-empty Password marks the section as
// gated.
type Section struct {
	Password string    `json:"password,omitempty"`
	Projects []Project `json:"projects"`
}

// Protected reports whether viewing the section's projects requires the
// shared password.
func (s Section) Protected() bool { return s.Password != "" }

// Project is a thumbnail-level summary of one project.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Year         Year     `json:"year"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Thumbnails   []string `json:"thumbnails,omitempty"`
	ThumbnailAlt string   `json:"thumbnailAlt"`
	DetailPage   string   `json:"detailPage,omitempty"`
}

// Detail is the full record shown on a project's detail page.
type Detail struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Year         Year          `json:"year"`
	Introduction Introduction  `json:"introduction"`
	Body         []BodySection `json:"body"`
	Images       []Image       `json:"images"`
	NextProject  *NextProject  `json:"nextProject,omitempty"`
}

// Introduction holds the fixed intro fields of a detail page.
type Introduction struct {
	Role        string `json:"role"`
	Timeline    string `json:"timeline"`
	Team        string `json:"team"`
	Description string `json:"description"`
}

// BodySectionType tags a body section.
type BodySectionType string

const (
	// BodyText is the line-oriented markup handled by render.Markup.
	BodyText BodySectionType = "text"
	// BodyMarkdown is rendered with a full CommonMark renderer.
	BodyMarkdown BodySectionType = "markdown"
)

// BodySection is one block of a detail page body. Unknown types are kept so
// they can be rendered as empty blocks.
type BodySection struct {
	Type    BodySectionType `json:"type"`
	Content string          `json:"content"`
}

// Image is one figure in a detail page gallery.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// NextProject links a detail page to the following project.
type NextProject struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Year accepts both JSON strings ("2024", "2023 - 2024") and numbers (2024).
type Year string

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

func (y Year) String() string { return string(y) }

// IsSelected reports whether id belongs to the password-protected section.
func (d *Document) IsSelected(id string) bool {
	_, ok := d.SelectedProject(id)
	return ok
}

// SelectedProject returns the selected-work summary for id.
func (d *Document) SelectedProject(id string) (Project, bool) {
	for _, p := range d.SelectedWork.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Detail returns the detail record for id.
func (d *Document) Detail(id string) (Detail, bool) {
	if d.ProjectDetails == nil {
		return Detail{}, false
	}
	detail, ok := d.ProjectDetails[id]
	return detail, ok
}
