package page

import "testing"

func TestIdentify(t *testing.T) {
	tests := []struct {
		path string
		want ID
	}{
		{"/", Home},
		{"", Home},
		{"/index.html", Home},
		{"/pages/password.html", Password},
		{"/pages/workDetail.html", Detail},
		{"/pages/../index.html", Home},
		{"/password.html", Unknown},
		{"/pages/", Unknown},
		{"/css/main.css", Unknown},
	}
	for _, tt := range tests {
		if got := Identify(tt.path); got != tt.want {
			t.Errorf("Identify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIDLayout(t *testing.T) {
	tests := []struct {
		id    ID
		path  string
		dir   string
		depth int
	}{
		{Home, "/index.html", "", 0},
		{Password, "/pages/password.html", "pages", 1},
		{Detail, "/pages/workDetail.html", "pages", 1},
		{Unknown, "", "", 0},
	}
	for _, tt := range tests {
		if got := tt.id.Path(); got != tt.path {
			t.Errorf("%v.Path() = %q, want %q", tt.id, got, tt.path)
		}
		if got := tt.id.Dir(); got != tt.dir {
			t.Errorf("%v.Dir() = %q, want %q", tt.id, got, tt.dir)
		}
		if got := tt.id.Depth(); got != tt.depth {
			t.Errorf("%v.Depth() = %d, want %d", tt.id, got, tt.depth)
		}
	}
}

func TestIdentifyRoundTrip(t *testing.T) {
	for _, id := range All() {
		if got := Identify(id.Path()); got != id {
			t.Errorf("Identify(%v.Path()) = %v", id, got)
		}
	}
}
