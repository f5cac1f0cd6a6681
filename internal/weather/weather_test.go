package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/classicnews/internal/config"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "28.61,77.2", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"location":{"name":"New Delhi"},"current":{"temp_c":31.6,"condition":{"text":"Partly cloudy"}}}`))
	}))
	defer srv.Close()

	c := NewClient(config.WeatherAPI{BaseURL: srv.URL}, "secret", srv.Client())
	r, err := c.Current(context.Background(), Coords{Lat: 28.61, Lon: 77.2})
	require.NoError(t, err)
	assert.Equal(t, Reading{City: "New Delhi", TempC: 31.6, Condition: "Partly cloudy"}, r)

	d := Describe(r)
	assert.Equal(t, "32°C", d.Temperature)
	assert.Equal(t, "☁️", d.Icon)
	assert.Equal(t, "New Delhi", d.Location)
}

func TestCurrentPlaceholderKeySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	for _, key := range []string{"", config.PlaceholderWeatherKey} {
		c := NewClient(config.WeatherAPI{BaseURL: srv.URL}, key, srv.Client())
		_, err := c.Current(context.Background(), Coords{})
		assert.ErrorIs(t, err, ErrKeyMissing)
		assert.Equal(t, "API Key Missing", DescribeError(err).Location)
	}
	assert.Zero(t, calls.Load())
}

func TestCurrentHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key is invalid."}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(config.WeatherAPI{BaseURL: srv.URL}, "bad", srv.Client()).Current(context.Background(), Coords{})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Contains(t, httpErr.Body, "API key is invalid.")

	d := DescribeError(err)
	assert.Equal(t, Display{Location: "Weather Error", Description: "Failed to load", Icon: "❌"}, d)
}

func TestCurrentNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"location":{"name":"X"},"current":{"temp_c":1}}`))
	}))
	defer srv.Close()

	_, err := NewClient(config.WeatherAPI{BaseURL: srv.URL}, "k", srv.Client()).Current(context.Background(), Coords{})
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, Display{Location: "N/A", Description: "No data", Icon: "❓"}, DescribeError(err))
}

func TestIcon(t *testing.T) {
	tests := map[string]string{
		"Sunny":              "☀️",
		"Clear":              "☀️",
		"Overcast":           "☁️",
		"Light rain":         "🌧️",
		"Patchy drizzle":     "🌧️",
		"Thundery outbreaks": "⛈️",
		"Heavy SNOW":         "❄️",
		"Sleet":              "❄️",
		"Mist":               "🌫️",
		"Freezing fog":       "🌫️",
		"Blowing dust":       "🌡️",
		"":                   "🌡️",
	}
	for cond, want := range tests {
		assert.Equal(t, want, Icon(cond), cond)
	}
}

func TestDescribeLocationErrors(t *testing.T) {
	tests := []struct {
		err  error
		loc  string
		icon string
	}{
		{ErrPermissionDenied, "Location access denied.", "🚫"},
		{ErrPositionUnavailable, "Location information unavailable.", "🚫"},
		{ErrTimeout, "Location request timed out.", "🚫"},
		{ErrUnsupported, "Geo Not Supported", "⛔"},
	}
	for _, tt := range tests {
		d := DescribeError(tt.err)
		assert.Equal(t, tt.loc, d.Location)
		assert.Equal(t, tt.icon, d.Icon)
		assert.Equal(t, "Weather unavailable", d.Description)
		assert.Empty(t, d.Temperature)
	}
	assert.Equal(t, Display{}, DescribeError(nil))
}

func TestIPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":51.5,"lon":-0.12}`))
	}))
	defer srv.Close()

	c, err := IPLocator{URL: srv.URL, Client: srv.Client()}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coords{Lat: 51.5, Lon: -0.12}, c)
}

func TestIPLocatorFailures(t *testing.T) {
	fail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer fail.Close()
	_, err := IPLocator{URL: fail.URL, Client: fail.Client()}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrPositionUnavailable)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()
	_, err = IPLocator{URL: slow.URL, Timeout: 50 * time.Millisecond, Client: slow.Client()}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestNewLocator(t *testing.T) {
	assert.IsType(t, IPLocator{}, NewLocator(config.Location{Mode: "ip", LookupURL: "http://x"}, nil))
	assert.IsType(t, DeniedLocator{}, NewLocator(config.Location{Mode: "off"}, nil))
	assert.Equal(t, StaticLocator{Coords: Coords{Lat: 1, Lon: 2}}, NewLocator(config.Location{Mode: "static", Latitude: 1, Longitude: 2}, nil))
	assert.Nil(t, NewLocator(config.Location{Mode: "static"}, nil))
	assert.Nil(t, NewLocator(config.Location{Mode: "gps"}, nil))

	_, err := Locate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRefreshLocatesOnlyWhenUnknown(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"location":{"name":"Oslo"},"current":{"temp_c":-3.5,"condition":{"text":"Snow"}}}`))
	}))
	defer srv.Close()
	client := NewClient(config.WeatherAPI{BaseURL: srv.URL}, "k", srv.Client())

	res := Refresh(context.Background(), client, DeniedLocator{}, nil)
	assert.ErrorIs(t, res.Err, ErrPermissionDenied)
	assert.Nil(t, res.Coords)
	assert.Zero(t, calls.Load(), "no weather call without a position")

	res = Refresh(context.Background(), client, StaticLocator{Coords: Coords{Lat: 59.9, Lon: 10.7}}, nil)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Coords)
	assert.Equal(t, "Oslo", res.Reading.City)

	known := *res.Coords
	res = Refresh(context.Background(), client, locatorFunc(func() error { return errors.New("must not be called") }), &known)
	require.NoError(t, res.Err)
	assert.Equal(t, "-3°C", Describe(res.Reading).Temperature)
}

func TestRefreshWithoutKeySkipsLocating(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"status":"success","lat":1,"lon":2}`))
	}))
	defer srv.Close()

	for _, key := range []string{"", config.PlaceholderWeatherKey} {
		client := NewClient(config.WeatherAPI{BaseURL: srv.URL}, key, srv.Client())
		res := Refresh(context.Background(), client, IPLocator{URL: srv.URL, Client: srv.Client()}, nil)
		assert.ErrorIs(t, res.Err, ErrKeyMissing)
		assert.Nil(t, res.Coords)
		assert.Equal(t, "API Key Missing", DescribeError(res.Err).Location)
	}
	assert.Zero(t, hits.Load(), "no locate or weather request without a key")
}

type locatorFunc func() error

func (f locatorFunc) Locate(context.Context) (Coords, error) { return Coords{}, f() }

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/search?q=weather+in+New%20Delhi", SearchURL("New Delhi", "https://www.weatherapi.com/"))
	assert.Equal(t, "https://www.google.com/search?q=weather+in+S%C3%A3o%20Paulo", SearchURL("São Paulo", ""))
	assert.Equal(t, "https://www.weatherapi.com/", SearchURL("", "https://www.weatherapi.com/"))
	assert.Equal(t, "https://www.google.com/search?q=weather", SearchURL("", ""))
}
