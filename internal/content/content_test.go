package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ziadkadry99/folio/internal/logging"
)

const sampleJSON = `{
  "selectedWork": {"password": "pw", "projects": [{"id": "a", "title": "A", "year": 2021, "thumbnail": "a.png"}]},
  "personalWork": {"projects": [{"id": "b", "title": "B", "year": "2020", "thumbnails": ["b1.png", "b2.png"]}]},
  "projectDetails": {
    "a": {"title": "A", "year": 2021, "body": [{"type": "text", "content": "x"}], "nextProject": {"id": "b", "title": "B", "thumbnail": "b1.png"}},
    "b": {"title": "B", "year": "2020"}
  }
}`

func TestResourcePath(t *testing.T) {
	tests := []struct {
		depth int
		want  string
	}{
		{0, "data/content.json"},
		{1, "../data/content.json"},
		{2, "../../data/content.json"},
		{-1, "data/content.json"},
	}
	for _, tt := range tests {
		if got := ResourcePath(tt.depth); got != tt.want {
			t.Errorf("ResourcePath(%d) = %q, want %q", tt.depth, got, tt.want)
		}
	}
}

func TestLoadFromDir(t *testing.T) {
	fsys := fstest.MapFS{
		"data/content.json": &fstest.MapFile{Data: []byte(sampleJSON)},
	}

	for _, tc := range []struct {
		pageDir string
		depth   int
	}{
		{"", 0},
		{"pages", 1},
	} {
		store := NewStore(DirOrigin{FS: fsys}.At(tc.pageDir), tc.depth, logging.Discard())
		doc, err := store.Load(context.Background())
		if err != nil {
			t.Fatalf("Load(pageDir=%q): %v", tc.pageDir, err)
		}
		if len(doc.SelectedWork.Projects) != 1 || doc.SelectedWork.Projects[0].ID != "a" {
			t.Errorf("unexpected selected work: %+v", doc.SelectedWork.Projects)
		}
		if doc.SelectedWork.Projects[0].Year != "2021" {
			t.Errorf("numeric year = %q, want 2021", doc.SelectedWork.Projects[0].Year)
		}
	}
}

func TestLoadWrongDepthFails(t *testing.T) {
	fsys := fstest.MapFS{
		"data/content.json": &fstest.MapFile{Data: []byte(sampleJSON)},
	}
	// A root page declaring depth 1 would look above the site root.
	store := NewStore(DirOrigin{FS: fsys}.At(""), 1, logging.Discard())
	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(DirOrigin{FS: fstest.MapFS{}}.At(""), 0, logging.Discard())
	doc, err := store.Load(context.Background())
	if doc != nil {
		t.Error("expected nil document")
	}
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"data/content.json": &fstest.MapFile{Data: []byte(`{"selectedWork": [`)},
	}
	store := NewStore(DirOrigin{FS: fsys}.At(""), 0, logging.Discard())
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestLoadFromHTTP(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/site/data/content.json" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/site")
	if err != nil {
		t.Fatal(err)
	}
	origin := HTTPOrigin{Base: base, Client: srv.Client()}

	root := NewStore(origin.At(""), 0, logging.Discard())
	if _, err := root.Load(context.Background()); err != nil {
		t.Fatalf("root Load: %v", err)
	}
	nested := NewStore(origin.At("pages"), 1, logging.Discard())
	if _, err := nested.Load(context.Background()); err != nil {
		t.Fatalf("nested Load: %v", err)
	}
	// No caching: both loads hit the server.
	if hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
}

func TestLoadHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	base, _ := url.Parse(srv.URL)
	store := NewStore(HTTPOrigin{Base: base}.At(""), 0, logging.Discard())
	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention status, got %v", err)
	}
}

func TestDocumentLookups(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.IsSelected("a") {
		t.Error("a should be selected work")
	}
	if doc.IsSelected("b") {
		t.Error("b should not be selected work")
	}
	if _, ok := doc.Detail("missing"); ok {
		t.Error("missing should have no detail")
	}
	if d, ok := doc.Detail("a"); !ok || d.NextProject == nil || d.NextProject.ID != "b" {
		t.Errorf("unexpected detail for a: %+v", d)
	}
	if !doc.SelectedWork.Protected() || doc.PersonalWork.Protected() {
		t.Error("only selected work should be protected")
	}

	var empty Document
	if _, ok := empty.Detail("a"); ok {
		t.Error("empty document should have no details")
	}
}

func TestYearUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  Year
	}{
		{`{"year": 2024}`, "2024"},
		{`{"year": "2023 - 2024"}`, "2023 - 2024"},
		{`{"year": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(`{"personalWork": {"projects": [` + tt.input + `]}}`))
		if err != nil {
			t.Fatalf("Parse(%s): %v", tt.input, err)
		}
		if got := doc.PersonalWork.Projects[0].Year; got != tt.want {
			t.Errorf("year from %s = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := Parse([]byte(`{"personalWork": {"projects": [{"year": true}]}}`)); err == nil {
		t.Error("expected error for boolean year")
	}
}

func TestValidate(t *testing.T) {
	doc, err := Parse([]byte(`{
	  "selectedWork": {"projects": [{"id": "a", "thumbnail": "a.png"}, {"id": "", "title": "Nameless"}]},
	  "personalWork": {"projects": [{"id": "a", "thumbnail": "a.png"}, {"id": "c"}]},
	  "projectDetails": {"a": {"nextProject": {"id": "zzz"}}}
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var got []string
	for _, p := range doc.Validate() {
		got = append(got, p.String())
	}
	joined := strings.Join(got, "\n")

	for _, want := range []string{
		"selectedWork has projects but no password",
		"selectedWork has a project without an id",
		"a: listed in both selectedWork and personalWork",
		"c: no projectDetails entry",
		"c: no thumbnail",
		`a: nextProject "zzz" has no projectDetails entry`,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing problem %q in:\n%s", want, joined)
		}
	}
}

func TestValidateSampleSite(t *testing.T) {
	data, err := os.ReadFile("../../testdata/site/data/content.json")
	if err != nil {
		t.Fatalf("reading sample site: %v", err)
	}
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if problems := doc.Validate(); len(problems) != 0 {
		t.Errorf("sample site should be clean, got %v", problems)
	}
}

func TestAssets(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := doc.Assets()
	want := []string{"a.png", "b1.png", "b2.png"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Assets() = %v, want %v", got, want)
	}
}
