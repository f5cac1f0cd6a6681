package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matheuskafuri/classicnews/internal/news"
)

// Resolve returns where an article is read: its own link for feed items,
// otherwise the detail page resolved by articleURL.
func Resolve(a news.Article, articleURL func(path string) string) string {
	if a.Link != "" {
		return a.Link
	}
	return articleURL(a.DetailPath())
}

// Open launches the system browser for an http(s) URL or an existing local file.
func Open(target string) error {
	if target != "" && !strings.Contains(target, "://") && filepath.IsAbs(target) {
		return OpenFile(target)
	}
	if err := validate(target); err != nil {
		return err
	}
	return launch(target)
}

// OpenFile opens a local page. The path must be absolute and exist.
func OpenFile(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("refusing to open relative path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return launch((&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String())
}

func validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}

func launch(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
