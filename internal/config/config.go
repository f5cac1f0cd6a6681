package config

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// PlaceholderWeatherKey is the key shipped in the defaults. It never reaches the weather API.
const PlaceholderWeatherKey = "YOUR_WEATHERAPI_API_KEY"

type WeatherAPI struct {
	Name       string `yaml:"name" json:"name" jsonschema:"description=Weather provider display name"`
	Key        string `yaml:"key" json:"key" jsonschema:"description=Weather API key (CLASSICNEWS_WEATHER_KEY overrides)"`
	BaseURL    string `yaml:"baseUrl" json:"baseUrl" jsonschema:"description=Current conditions endpoint"`
	WebsiteURL string `yaml:"websiteUrl" json:"websiteUrl" jsonschema:"description=Provider site opened when no city is known"`
}

type Location struct {
	Mode      string  `yaml:"mode" json:"mode" jsonschema:"enum=ip,enum=static,enum=off,default=ip,description=How the device location is obtained"`
	Latitude  float64 `yaml:"latitude" json:"latitude" jsonschema:"description=Latitude for static mode"`
	Longitude float64 `yaml:"longitude" json:"longitude" jsonschema:"description=Longitude for static mode"`
	LookupURL string  `yaml:"lookupUrl" json:"lookupUrl" jsonschema:"description=IP geolocation endpoint returning lat/lon JSON"`
	Timeout   string  `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Location lookup timeout"`
}

type Summarizer struct {
	Provider string `yaml:"provider" json:"provider" jsonschema:"enum=gemini,enum=openai,default=gemini"`
	APIKey   string `yaml:"apiKey" json:"apiKey" jsonschema:"description=Provider API key (CLASSICNEWS_AI_KEY overrides)"`
	Model    string `yaml:"model" json:"model"`
	Endpoint string `yaml:"endpoint" json:"endpoint" jsonschema:"description=Provider base URL"`
	Fallback bool   `yaml:"fallback" json:"fallback" jsonschema:"default=false,description=Use generic extraction when a page has no news container"`
	Timeout  string `yaml:"timeout" json:"timeout" jsonschema:"default=30s"`
}

// AutoCategory as a feed category sorts each item into a base category by keyword.
const AutoCategory = "auto"

// Source is an extra RSS/Atom feed shown under one portal category.
type Source struct {
	Name     string `yaml:"name" json:"name"`
	URL      string `yaml:"url" json:"url"`
	Category string `yaml:"category" json:"category" jsonschema:"description=Portal category or auto"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

type Config struct {
	AppName        string     `yaml:"appName" json:"appName" jsonschema:"default=Classic News"`
	BaseCategories []string   `yaml:"baseCategories" json:"baseCategories" jsonschema:"description=Ordered topic categories shown between Breaking News and All"`
	WeatherAPI     WeatherAPI `yaml:"weatherApi" json:"weatherApi"`
	SiteURL        string     `yaml:"siteUrl" json:"siteUrl" jsonschema:"description=Base URL of the static site hosting the news index and article pages"`
	NewsPath       string     `yaml:"newsPath" json:"newsPath" jsonschema:"default=Data/news.json"`
	RequestTimeout string     `yaml:"requestTimeout" json:"requestTimeout" jsonschema:"default=15s"`
	Location       Location   `yaml:"location" json:"location"`
	Summarizer     Summarizer `yaml:"summarizer" json:"summarizer"`
	Feeds          []Source   `yaml:"feeds" json:"feeds"`
	Storage        string     `yaml:"storage,omitempty" json:"storage,omitempty" jsonschema:"description=Preference store path"`
}

// WeatherKey returns the configured key, or empty when only the placeholder is set.
func (c *Config) WeatherKey() string {
	k := strings.TrimSpace(c.WeatherAPI.Key)
	if k == PlaceholderWeatherKey {
		return ""
	}
	return k
}

func (c *Config) AIKey() string {
	return strings.TrimSpace(c.Summarizer.APIKey)
}

// SummarizerEnabled returns true if a provider and key are configured.
func (c *Config) SummarizerEnabled() bool {
	return c.Summarizer.Provider != "" && c.AIKey() != ""
}

func (c *Config) RequestDuration() time.Duration {
	return parseDuration(c.RequestTimeout, 15*time.Second)
}

func (l Location) TimeoutDuration() time.Duration {
	return parseDuration(l.Timeout, 10*time.Second)
}

func (s Summarizer) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout, 30*time.Second)
}

func (c *Config) EnabledFeeds() []Source {
	var out []Source
	for _, s := range c.Feeds {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// NewsURL returns where the article index lives: an http(s) URL or a file path.
func (c *Config) NewsURL() string {
	return c.ArticleURL(c.NewsPath)
}

// ArticleURL resolves a site-relative path against SiteURL. A local SiteURL
// gives an absolute file path.
func (c *Config) ArticleURL(path string) string {
	if path == "" {
		return ""
	}
	if isRemote(path) || filepath.IsAbs(path) || c.SiteURL == "" {
		return path
	}
	if !isRemote(c.SiteURL) {
		p := filepath.Join(c.SiteURL, filepath.FromSlash(unescapePath(path)))
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	base, err := url.Parse(c.SiteURL)
	if err != nil {
		return path
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}

// Masked returns a copy safe to print.
func (c *Config) Masked() Config {
	out := *c
	out.Feeds = append([]Source(nil), c.Feeds...)
	out.BaseCategories = append([]string(nil), c.BaseCategories...)
	if k := c.WeatherKey(); k != "" {
		out.WeatherAPI.Key = mask(k)
	}
	if k := c.AIKey(); k != "" {
		out.Summarizer.APIKey = mask(k)
	}
	return out
}

// Secrets lists values that must never reach the log.
func (c *Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.WeatherKey(), c.AIKey()} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "classicnews", "config.json")
}

// StorePath returns the preference store location.
func (c *Config) StorePath() string {
	if c.Storage != "" {
		return c.Storage
	}
	return filepath.Join(xdg.DataHome, "classicnews", "prefs.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "classicnews", "classicnews.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	cfg, err := loadDefaults()
	if err != nil {
		panic(err) // embedded file is part of the binary
	}
	return cfg
}

// Load builds the effective configuration: embedded defaults, then the
// override document at path (file or http(s) URL), then environment keys.
// A missing or broken override is logged and the defaults are used.
func Load(ctx context.Context, path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath()
	}

	var layers []Override
	o, err := readOverride(ctx, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			lgr.Printf("[WARN] config %s not found, using defaults", path)
		} else {
			lgr.Printf("[DEBUG] no config at %s, using defaults", path)
		}
	case err != nil:
		lgr.Printf("[WARN] loading config %s: %v, using defaults", path, err)
	default:
		lgr.Printf("[INFO] configuration loaded from %s", path)
		layers = append(layers, o)
	}
	layers = append(layers, envOverride())

	cfg := Merge(*defaults, layers...)
	cfg.Feeds = validFeeds(cfg.Feeds)
	return &cfg, nil
}

func readOverride(ctx context.Context, path string) (Override, error) {
	data, err := readSource(ctx, path)
	if err != nil {
		return Override{}, err
	}
	return ParseOverride(data)
}

// ParseOverride decodes a JSON or YAML override document.
func ParseOverride(data []byte) (Override, error) {
	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Override{}, fmt.Errorf("parsing config: %w", err)
	}
	return o, nil
}

func readSource(ctx context.Context, path string) ([]byte, error) {
	if !isRemote(path) {
		return os.ReadFile(path) //nolint:gosec // path comes from the --config flag
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetching config: %w", os.ErrNotExist)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching config: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

func envOverride() Override {
	var o Override
	if v := os.Getenv("CLASSICNEWS_WEATHER_KEY"); v != "" {
		o.WeatherAPI = &WeatherAPIOverride{Key: &v}
	}
	if v := os.Getenv("CLASSICNEWS_AI_KEY"); v != "" {
		o.Summarizer = &SummarizerOverride{APIKey: &v}
	}
	return o
}

func validFeeds(feeds []Source) []Source {
	var out []Source
	for i, s := range feeds {
		if err := validateSource(s); err != nil {
			lgr.Printf("[WARN] feed %d skipped: %v", i, err)
			continue
		}
		out = append(out, s)
	}
	return out
}

func validateSource(s Source) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Category == "" {
		return fmt.Errorf("source %q: category is required", s.Name)
	}
	if s.URL == "" {
		return fmt.Errorf("source %q: url is required", s.Name)
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
	}
	return nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func unescapePath(p string) string {
	if u, err := url.PathUnescape(p); err == nil {
		return u
	}
	return p
}

// parseDuration accepts Go durations and the "Nd" day form.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
