package render

import (
	"net/url"
	"strings"
)

// Page file names. The password and detail pages live in PagesDir, one level
// below the homepage.
const (
	HomePage     = "index.html"
	PasswordPage = "password.html"
	DetailPage   = "workDetail.html"
	PagesDir     = "pages"

	// SelectedSection is the section parameter carried by the password flow.
	SelectedSection = "selected"
)

// PasswordHref links to the password page for a selected-work project.
// prefix is the path from the linking page to PagesDir ("pages/" from the
// homepage, "" from a sibling page).
func PasswordHref(prefix, projectID string) string {
	q := url.Values{}
	q.Set("project", projectID)
	q.Set("section", SelectedSection)
	return prefix + PasswordPage + "?" + q.Encode()
}

// DetailHref links to the detail page for a project.
func DetailHref(prefix, projectID string) string {
	q := url.Values{}
	q.Set("project", projectID)
	return prefix + DetailPage + "?" + q.Encode()
}

// HomeHref links back to the homepage from a page depth levels down.
func HomeHref(depth int) string {
	return up(depth) + HomePage
}

// up returns the relative prefix that climbs depth directories.
func up(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}
