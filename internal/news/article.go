package news

import (
	"encoding/json"
	"html"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
)

// Article is one news item of the working set. Immutable once prepared.
type Article struct {
	UniqueID string
	Title    string
	Summary  string
	Image    string
	Date     time.Time
	RawDate  string
	Category string
	Location string
	// Link is set for items that live outside the portal (feed items).
	Link string
}

// DetailPath is the portal-relative page of the article.
func (a Article) DetailPath() string {
	return "News/" + url.PathEscape(a.Category) + "/" + url.PathEscape(a.UniqueID) + ".html"
}

// Record is the wire shape of one entry in the news index.
type Record struct {
	UniqueID flexString `json:"uniqueId"`
	Title    string     `json:"title"`
	Summary  string     `json:"summary"`
	Img      string     `json:"img"`
	Image    string     `json:"image"`
	Date     string     `json:"date"`
	Category string     `json:"category"`
	Location string     `json:"location"`
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

var textPolicy = bluemonday.StrictPolicy()

// PlainText strips markup and collapses whitespace.
func PlainText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

// ParseDate parses the index date field. Unparsable values give the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FromRecord converts a wire record. ok is false when a required field is missing.
func FromRecord(r Record) (Article, bool) {
	a := Article{
		UniqueID: strings.TrimSpace(string(r.UniqueID)),
		Title:    PlainText(r.Title),
		Summary:  PlainText(r.Summary),
		Image:    strings.TrimSpace(r.Img),
		RawDate:  strings.TrimSpace(r.Date),
		Category: strings.TrimSpace(r.Category),
		Location: PlainText(r.Location),
	}
	if a.Image == "" {
		a.Image = strings.TrimSpace(r.Image)
	}
	if a.UniqueID == "" || a.Title == "" || a.Summary == "" || a.Image == "" || a.RawDate == "" || a.Category == "" {
		return Article{}, false
	}
	a.Date = ParseDate(a.RawDate)
	return a, true
}

// Prepare builds the working set: duplicates by id are dropped (first wins)
// and the result is stable-sorted by date, newest first.
func Prepare(groups ...[]Article) []Article {
	seen := make(map[string]bool)
	var out []Article
	for _, g := range groups {
		for _, a := range g {
			if seen[a.UniqueID] {
				continue
			}
			seen[a.UniqueID] = true
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
