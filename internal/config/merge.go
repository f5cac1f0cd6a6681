package config

// Override is a partial configuration. A nil field is absent and leaves the
// value underneath it untouched.
type Override struct {
	AppName        *string             `yaml:"appName"`
	BaseCategories *[]string           `yaml:"baseCategories"`
	WeatherAPI     *WeatherAPIOverride `yaml:"weatherApi"`
	SiteURL        *string             `yaml:"siteUrl"`
	NewsPath       *string             `yaml:"newsPath"`
	RequestTimeout *string             `yaml:"requestTimeout"`
	Location       *LocationOverride   `yaml:"location"`
	Summarizer     *SummarizerOverride `yaml:"summarizer"`
	Feeds          *[]Source           `yaml:"feeds"`
	Storage        *string             `yaml:"storage"`
}

type WeatherAPIOverride struct {
	Name       *string `yaml:"name"`
	Key        *string `yaml:"key"`
	BaseURL    *string `yaml:"baseUrl"`
	WebsiteURL *string `yaml:"websiteUrl"`
}

type LocationOverride struct {
	Mode      *string  `yaml:"mode"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	LookupURL *string  `yaml:"lookupUrl"`
	Timeout   *string  `yaml:"timeout"`
}

type SummarizerOverride struct {
	Provider *string `yaml:"provider"`
	APIKey   *string `yaml:"apiKey"`
	Model    *string `yaml:"model"`
	Endpoint *string `yaml:"endpoint"`
	Fallback *bool   `yaml:"fallback"`
	Timeout  *string `yaml:"timeout"`
}

// Merge applies layers onto base in order, so a later layer wins over an
// earlier one. Top-level keys replace the base value as a whole; the
// weatherApi, location and summarizer sections merge field by field.
func Merge(base Config, layers ...Override) Config {
	out := base
	out.BaseCategories = append([]string(nil), base.BaseCategories...)
	out.Feeds = append([]Source(nil), base.Feeds...)

	for _, o := range layers {
		set(&out.AppName, o.AppName)
		if o.BaseCategories != nil {
			out.BaseCategories = append([]string(nil), (*o.BaseCategories)...)
		}
		set(&out.SiteURL, o.SiteURL)
		set(&out.NewsPath, o.NewsPath)
		set(&out.RequestTimeout, o.RequestTimeout)
		set(&out.Storage, o.Storage)
		if o.Feeds != nil {
			out.Feeds = append([]Source(nil), (*o.Feeds)...)
		}

		if w := o.WeatherAPI; w != nil {
			set(&out.WeatherAPI.Name, w.Name)
			set(&out.WeatherAPI.Key, w.Key)
			set(&out.WeatherAPI.BaseURL, w.BaseURL)
			set(&out.WeatherAPI.WebsiteURL, w.WebsiteURL)
		}
		if l := o.Location; l != nil {
			set(&out.Location.Mode, l.Mode)
			set(&out.Location.Latitude, l.Latitude)
			set(&out.Location.Longitude, l.Longitude)
			set(&out.Location.LookupURL, l.LookupURL)
			set(&out.Location.Timeout, l.Timeout)
		}
		if s := o.Summarizer; s != nil {
			set(&out.Summarizer.Provider, s.Provider)
			set(&out.Summarizer.APIKey, s.APIKey)
			set(&out.Summarizer.Model, s.Model)
			set(&out.Summarizer.Endpoint, s.Endpoint)
			set(&out.Summarizer.Fallback, s.Fallback)
			set(&out.Summarizer.Timeout, s.Timeout)
		}
	}
	return out
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
