package browser

import (
	"path/filepath"
	"testing"

	"github.com/matheuskafuri/classicnews/internal/news"
)

func TestValidateRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com/News/Tech/1.html", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validate(tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("validate(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validate(%q): unexpected error %v", tt.url, err)
		}
	}
}

func TestOpenRejectsBadTargets(t *testing.T) {
	if err := Open("javascript:alert(1)"); err == nil {
		t.Error("expected error for javascript scheme")
	}
	if err := Open(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing local file")
	}
	if err := OpenFile("relative/page.html"); err == nil {
		t.Error("expected error for relative path")
	}
}

func TestResolve(t *testing.T) {
	base := func(p string) string { return "http://localhost:8000/" + p }

	a := news.Article{UniqueID: "7", Category: "Tech"}
	if got := Resolve(a, base); got != "http://localhost:8000/News/Tech/7.html" {
		t.Errorf("Resolve detail page = %q", got)
	}

	a.Link = "https://blog.example.com/post"
	if got := Resolve(a, base); got != "https://blog.example.com/post" {
		t.Errorf("Resolve feed item = %q", got)
	}
}
