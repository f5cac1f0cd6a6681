package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/matheuskafuri/classicnews/internal/config"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("location unavailable")
	ErrTimeout             = errors.New("location request timed out")
	ErrUnsupported         = errors.New("location not supported")
)

// Locator makes one best-effort read of the device position.
type Locator interface {
	Locate(ctx context.Context) (Coords, error)
}

type StaticLocator struct {
	Coords Coords
}

func (s StaticLocator) Locate(context.Context) (Coords, error) {
	return s.Coords, nil
}

// DeniedLocator always refuses, as when the user turned location off.
type DeniedLocator struct{}

func (DeniedLocator) Locate(context.Context) (Coords, error) {
	return Coords{}, ErrPermissionDenied
}

// IPLocator estimates the position from the public IP address.
type IPLocator struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

type ipResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func (l IPLocator) Locate(ctx context.Context) (Coords, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	hc := l.Client
	if hc == nil {
		hc = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, http.NoBody)
	if err != nil {
		return Coords{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Coords{}, ErrTimeout
		}
		return Coords{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coords{}, fmt.Errorf("%w: lookup status %d", ErrPositionUnavailable, resp.StatusCode)
	}
	var ir ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Coords{}, ErrTimeout
		}
		return Coords{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	if (ir.Status != "" && ir.Status != "success") || ir.Lat == nil || ir.Lon == nil {
		return Coords{}, fmt.Errorf("%w: %s", ErrPositionUnavailable, ir.Message)
	}
	return Coords{Lat: *ir.Lat, Lon: *ir.Lon}, nil
}

// NewLocator picks the locator for the configured mode. It returns nil when
// the mode cannot locate anything.
func NewLocator(cfg config.Location, hc *http.Client) Locator {
	switch strings.ToLower(cfg.Mode) {
	case "ip", "":
		return IPLocator{URL: cfg.LookupURL, Timeout: cfg.TimeoutDuration(), Client: hc}
	case "static":
		if cfg.Latitude == 0 && cfg.Longitude == 0 {
			return nil
		}
		return StaticLocator{Coords: Coords{Lat: cfg.Latitude, Lon: cfg.Longitude}}
	case "off":
		return DeniedLocator{}
	default:
		lgr.Printf("[WARN] unknown location mode %q", cfg.Mode)
		return nil
	}
}

// Locate reads the position from l. A nil locator is ErrUnsupported.
func Locate(ctx context.Context, l Locator) (Coords, error) {
	if l == nil {
		return Coords{}, ErrUnsupported
	}
	c, err := l.Locate(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return Coords{}, ErrTimeout
	}
	return c, err
}

// Result is one refresh outcome. Coords is set once a position is known.
type Result struct {
	Coords  *Coords
	Reading Reading
	Err     error
}

// Refresh fetches conditions for known, or locates first when no position
// was acquired yet. Without an API key neither lookup is made. Nothing is retried.
func Refresh(ctx context.Context, w *Client, l Locator, known *Coords) Result {
	if w.KeyMissing() {
		return Result{Err: ErrKeyMissing}
	}
	if known == nil {
		c, err := Locate(ctx, l)
		if err != nil {
			lgr.Printf("[WARN] geolocation: %v", err)
			return Result{Err: err}
		}
		known = &c
	}
	r, err := w.Current(ctx, *known)
	if err != nil {
		lgr.Printf("[WARN] weather: %v", err)
	}
	return Result{Coords: known, Reading: r, Err: err}
}
