// Package weather reads current conditions for the device location and maps
// every outcome to what the header widget shows.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matheuskafuri/classicnews/internal/config"
)

var (
	ErrKeyMissing = errors.New("weather API key is not set")
	ErrNoData     = errors.New("weather response has no data")
)

// HTTPError is a non-2xx answer from the weather API.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("weather API %d: %s", e.Status, e.Body)
}

type Coords struct {
	Lat float64
	Lon float64
}

func (c Coords) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Reading is the last successful observation.
type Reading struct {
	City      string
	TempC     float64
	Condition string
}

type Client struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewClient builds a client for the configured provider. key is the effective
// key; the shipped placeholder counts as missing.
func NewClient(api config.WeatherAPI, key string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{key: key, baseURL: api.BaseURL, client: hc}
}

type apiResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC     *float64 `json:"temp_c"`
		Condition *struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// KeyMissing reports whether no usable API key is configured.
func (w *Client) KeyMissing() bool {
	return w.key == "" || w.key == config.PlaceholderWeatherKey
}

// Current fetches conditions at c. A missing key fails without a request.
func (w *Client) Current(ctx context.Context, c Coords) (Reading, error) {
	if w.KeyMissing() {
		return Reading{}, ErrKeyMissing
	}

	sep := "?"
	if strings.Contains(w.baseURL, "?") {
		sep = "&"
	}
	u := w.baseURL + sep + "key=" + url.QueryEscape(w.key) + "&q=" + c.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Reading{}, fmt.Errorf("creating weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return Reading{}, fmt.Errorf("weather API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Reading{}, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var ar apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Reading{}, fmt.Errorf("decoding weather response: %w", err)
	}
	if ar.Location == nil || ar.Current == nil || ar.Current.Condition == nil || ar.Current.TempC == nil {
		return Reading{}, ErrNoData
	}
	return Reading{
		City:      ar.Location.Name,
		TempC:     *ar.Current.TempC,
		Condition: ar.Current.Condition.Text,
	}, nil
}
