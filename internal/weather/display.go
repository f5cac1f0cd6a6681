package weather

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Display is the widget content.
type Display struct {
	Location    string
	Temperature string
	Description string
	Icon        string
}

const unavailable = "Weather unavailable"

// Icon picks a glyph by case-insensitive substring match on the condition.
func Icon(condition string) string {
	c := strings.ToLower(condition)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(c, s) {
				return true
			}
		}
		return false
	}
	switch {
	case has("sun", "clear"):
		return "☀️"
	case has("cloud", "overcast"):
		return "☁️"
	case has("rain", "drizzle"):
		return "🌧️"
	case has("thunder"):
		return "⛈️"
	case has("snow", "sleet"):
		return "❄️"
	case has("mist", "fog"):
		return "🌫️"
	default:
		return "🌡️"
	}
}

func Describe(r Reading) Display {
	return Display{
		Location:    r.City,
		Temperature: fmt.Sprintf("%d°C", int(math.Floor(r.TempC+0.5))),
		Description: r.Condition,
		Icon:        Icon(r.Condition),
	}
}

// DescribeError maps a locate or fetch failure to its widget message.
func DescribeError(err error) Display {
	switch {
	case errors.Is(err, ErrKeyMissing):
		return Display{Location: "API Key Missing", Description: unavailable, Icon: "⚠️"}
	case errors.Is(err, ErrNoData):
		return Display{Location: "N/A", Description: "No data", Icon: "❓"}
	case errors.Is(err, ErrPermissionDenied):
		return Display{Location: "Location access denied.", Description: unavailable, Icon: "🚫"}
	case errors.Is(err, ErrPositionUnavailable):
		return Display{Location: "Location information unavailable.", Description: unavailable, Icon: "🚫"}
	case errors.Is(err, ErrTimeout):
		return Display{Location: "Location request timed out.", Description: unavailable, Icon: "🚫"}
	case errors.Is(err, ErrUnsupported):
		return Display{Location: "Geo Not Supported", Description: unavailable, Icon: "⛔"}
	case err != nil:
		return Display{Location: "Weather Error", Description: "Failed to load", Icon: "❌"}
	default:
		return Display{}
	}
}

// Loading is shown before the first reading arrives.
func Loading() Display {
	return Display{Location: "Loading...", Icon: "🌡️"}
}

// SearchURL is opened when the widget is activated.
func SearchURL(city, website string) string {
	if city != "" {
		return "https://www.google.com/search?q=weather+in+" + strings.ReplaceAll(url.QueryEscape(city), "+", "%20")
	}
	if website != "" {
		return website
	}
	return "https://www.google.com/search?q=weather"
}
