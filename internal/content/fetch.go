package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 8 << 20

// Fetcher retrieves a resource by a reference relative to the requesting
// page.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Origin hands out Fetchers positioned at a page directory below the site
// root ("" for the root itself).
type Origin interface {
	At(pageDir string) Fetcher
}

// DirOrigin serves the site from a filesystem.
type DirOrigin struct {
	FS fs.FS
}

// At implements Origin.
func (o DirOrigin) At(pageDir string) Fetcher {
	return DirFetcher{FS: o.FS, PageDir: pageDir}
}

// DirFetcher resolves references against PageDir inside FS.
type DirFetcher struct {
	FS      fs.FS
	PageDir string
}

// Fetch implements Fetcher.
func (f DirFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := resolveInRoot(f.PageDir, ref)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(f.FS, name)
}

// resolveInRoot joins ref onto pageDir and rejects results that leave the
// site root.
func resolveInRoot(pageDir, ref string) (string, error) {
	if path.IsAbs(ref) {
		ref = strings.TrimPrefix(ref, "/")
		pageDir = ""
	}
	joined := path.Join(pageDir, ref)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", fmt.Errorf("resource %q escapes the site root from %q", ref, pageDir)
	}
	return joined, nil
}

// HTTPOrigin serves the site from a base URL.
type HTTPOrigin struct {
	Base   *url.URL
	Client *http.Client
}

// At implements Origin.
func (o HTTPOrigin) At(pageDir string) Fetcher {
	base := *o.Base
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if pageDir != "" {
		base.Path = path.Join(base.Path, pageDir) + "/"
	}
	return HTTPFetcher{PageURL: &base, Client: o.Client}
}

// HTTPFetcher resolves references against PageURL and GETs them. There is
// no retry; a failed request is a failed load.
type HTTPFetcher struct {
	PageURL *url.URL
	Client  *http.Client
}

// Fetch implements Fetcher.
func (f HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	rel, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	target := f.PageURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return data, nil
}
