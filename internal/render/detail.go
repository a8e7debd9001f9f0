package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/ziadkadry99/folio/internal/content"
)

var (
	// ErrMissingProject means the project id was absent or unknown.
	ErrMissingProject = errors.New("missing project")
	// ErrAuthRequired means a protected project was requested while locked.
	ErrAuthRequired = errors.New("authentication required")
)

// Redirect is returned instead of a rendering when the viewer must be sent
// elsewhere. Location is relative to the page being rendered.
type Redirect struct {
	Location string
	Reason   error
}

func (r *Redirect) Error() string {
	return fmt.Sprintf("redirect to %s: %v", r.Location, r.Reason)
}

func (r *Redirect) Unwrap() error { return r.Reason }

// Authenticator reports whether protected content may be shown.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Sanitizer post-processes generated body HTML. *bluemonday.Policy
// satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// Options tune a detail rendering.
type Options struct {
	// Depth is how many directories below the site root the detail page
	// sits; asset paths are prefixed to climb back up.
	Depth int
	// Sanitizer, when set, filters every body block.
	Sanitizer Sanitizer
}

// BodyBlock is one rendered body section. Unknown section types produce a
// block with empty HTML.
type BodyBlock struct {
	Type content.BodySectionType `json:"type"`
	HTML template.HTML           `json:"html"`
}

// Figure is one gallery image. Caption is empty when the source has none.
type Figure struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// NextLink points at the following project.
type NextLink struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Href         string `json:"href"`
	Thumbnail    string `json:"thumbnail"`
	ThumbnailAlt string `json:"thumbnailAlt"`
}

// RenderedDetail is everything a detail page displays.
type RenderedDetail struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Subtitle     string               `json:"subtitle"`
	Year         string               `json:"year"`
	Protected    bool                 `json:"protected"`
	Introduction content.Introduction `json:"introduction"`
	Body         []BodyBlock          `json:"body"`
	Images       []Figure             `json:"images"`
	Next         *NextLink            `json:"nextProject,omitempty"`
}

// Detail renders projectID from doc. It returns a *Redirect error to the
// homepage when the project is missing (ErrMissingProject) and to the
// password page when it is protected and gate is locked (ErrAuthRequired).
func Detail(ctx context.Context, projectID string, doc *content.Document, gate Authenticator, opts Options) (*RenderedDetail, error) {
	if projectID == "" || doc == nil {
		return nil, &Redirect{Location: HomeHref(opts.Depth), Reason: ErrMissingProject}
	}
	project, ok := doc.Detail(projectID)
	if !ok {
		return nil, &Redirect{Location: HomeHref(opts.Depth), Reason: ErrMissingProject}
	}

	protected := doc.IsSelected(projectID)
	if protected && (gate == nil || !gate.IsAuthenticated(ctx)) {
		return nil, &Redirect{Location: PasswordHref("", projectID), Reason: ErrAuthRequired}
	}

	prefix := up(opts.Depth)
	out := &RenderedDetail{
		ID:           projectID,
		Title:        project.Title,
		Subtitle:     project.Subtitle,
		Year:         project.Year.String(),
		Protected:    protected,
		Introduction: project.Introduction,
		Body:         make([]BodyBlock, 0, len(project.Body)),
		Images:       make([]Figure, 0, len(project.Images)),
	}

	for _, section := range project.Body {
		out.Body = append(out.Body, BodyBlock{
			Type: section.Type,
			HTML: renderBody(section, opts.Sanitizer),
		})
	}

	for _, img := range project.Images {
		out.Images = append(out.Images, Figure{
			Src:     prefix + img.Src,
			Alt:     img.Alt,
			Caption: img.Caption,
		})
	}

	if next := project.NextProject; next != nil {
		out.Next = &NextLink{
			ID:           next.ID,
			Title:        next.Title,
			Href:         DetailHref("", next.ID),
			Thumbnail:    prefix + next.Thumbnail,
			ThumbnailAlt: next.Title + " thumbnail",
		}
	}

	return out, nil
}

func renderBody(section content.BodySection, sanitizer Sanitizer) template.HTML {
	var html string
	switch section.Type {
	case content.BodyText:
		html = `<div class="body-text">` + Markup(section.Content) + `</div>`
	case content.BodyMarkdown:
		md, err := Markdown(section.Content)
		if err != nil {
			return ""
		}
		html = `<div class="body-markdown">` + md + `</div>`
	default:
		return ""
	}
	if sanitizer != nil {
		html = sanitizer.Sanitize(html)
	}
	return template.HTML(html)
}
