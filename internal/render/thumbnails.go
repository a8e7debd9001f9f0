package render

import (
	"github.com/ziadkadry99/folio/internal/content"
)

// ThumbnailImages is how many images every thumbnail carries.
const ThumbnailImages = 2

// Image is an img element's source and alt text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Thumbnail is the homepage card for one project.
type Thumbnail struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	Year     string                 `json:"year"`
	Images   [ThumbnailImages]Image `json:"images"`
	Href     string                 `json:"href"`
}

// Thumbnails renders a section's projects as homepage cards, in section
// order. Protected cards link to the password page; the others link straight
// to the detail page. Links are relative to the homepage.
func Thumbnails(section content.Section, protected bool) []Thumbnail {
	out := make([]Thumbnail, 0, len(section.Projects))
	for _, p := range section.Projects {
		t := Thumbnail{
			ID:       p.ID,
			Title:    p.Title,
			Subtitle: p.Subtitle,
			Year:     p.Year.String(),
		}
		for i, src := range thumbnailSources(p) {
			t.Images[i] = Image{Src: src, Alt: p.ThumbnailAlt}
		}
		if protected {
			t.Href = PasswordHref(PagesDir+"/", p.ID)
		} else {
			t.Href = DetailHref(PagesDir+"/", p.ID)
		}
		out = append(out, t)
	}
	return out
}

// thumbnailSources picks exactly ThumbnailImages sources: the first entries
// of Thumbnails, padded by repeating the last one, or Thumbnail repeated.
func thumbnailSources(p content.Project) [ThumbnailImages]string {
	var srcs [ThumbnailImages]string
	if len(p.Thumbnails) == 0 {
		for i := range srcs {
			srcs[i] = p.Thumbnail
		}
		return srcs
	}
	for i := range srcs {
		if i < len(p.Thumbnails) {
			srcs[i] = p.Thumbnails[i]
		} else {
			srcs[i] = srcs[i-1]
		}
	}
	return srcs
}
