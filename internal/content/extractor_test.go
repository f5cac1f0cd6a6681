package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><body>
<nav><p>Menu text</p></nav>
<div class="container">
  <h1>Rover lands</h1>
  <p>The rover touched down <b>safely</b>.</p>
  <p>  </p>
  <p>Scientists cheered.</p>
</div>
</body></html>`

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractContainerParagraphs(t *testing.T) {
	srv := serve(t, articlePage)
	text, err := NewExtractor(5*time.Second, false).Extract(context.Background(), srv.URL+"/News/Space/1.html")
	require.NoError(t, err)
	assert.Equal(t, "The rover touched down safely. Scientists cheered.", text)
}

func TestExtractLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.html")
	require.NoError(t, os.WriteFile(path, []byte(articlePage), 0o600))

	text, err := NewExtractor(time.Second, false).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Scientists cheered.")
}

func TestExtractErrors(t *testing.T) {
	e := NewExtractor(5*time.Second, false)

	noContainer := serve(t, `<html><body><p>Loose text</p></body></html>`)
	_, err := e.Extract(context.Background(), noContainer.URL)
	assert.ErrorIs(t, err, ErrNoContainer)

	noText := serve(t, `<html><body><div class="container"><h1>Title only</h1></div></body></html>`)
	_, err = e.Extract(context.Background(), noText.URL)
	assert.ErrorIs(t, err, ErrNoText)

	_, err = e.Extract(context.Background(), noText.URL+"/missing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch URL content")
	assert.Contains(t, err.Error(), "404")
}

func TestExtractFallbackWithoutContainer(t *testing.T) {
	page := `<html><head><title>External</title></head><body><article>
<h1>External story</h1>
<p>This is a long paragraph of external article text that generic extraction should keep because it reads like the main content of the page and is clearly not boilerplate.</p>
<p>A second paragraph follows with more detail about the story so the extractor has enough text to work with and returns something meaningful.</p>
</article></body></html>`
	srv := serve(t, page)

	text, err := NewExtractor(5*time.Second, true).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "external article text")
}
