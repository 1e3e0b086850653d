package weather

import "math"

// Units is the unit system forwarded to the weather API. Values are not
// converted locally.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Source tells where a reading came from.
type Source string

const (
	SourceAPI       Source = "api"
	SourceSynthetic Source = "synthetic"
)

// Payload mirrors the OpenWeatherMap current weather document. Every field is
// optional; nil means the field was absent.
type Payload struct {
	Name       *string      `json:"name"`
	Main       *MainBlock   `json:"main"`
	Wind       *WindBlock   `json:"wind"`
	Clouds     *CloudsBlock `json:"clouds"`
	Visibility *float64     `json:"visibility"`
	Rain       *PrecipBlock `json:"rain"`
	Snow       *PrecipBlock `json:"snow"`
	Sys        *SysBlock    `json:"sys"`
}

type MainBlock struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Pressure  *float64 `json:"pressure"`
	Humidity  *float64 `json:"humidity"`
}

type WindBlock struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
}

type CloudsBlock struct {
	All *float64 `json:"all"`
}

type PrecipBlock struct {
	OneH *float64 `json:"1h"`
}

type SysBlock struct {
	Sunrise *int64 `json:"sunrise"`
	Sunset  *int64 `json:"sunset"`
}

// Reading is a fully populated snapshot ready for publication. Continuous
// fields missing from the source are NaN; accumulations and timestamps are 0.
type Reading struct {
	City   string
	Source Source

	Temperature float64
	FeelsLike   float64
	Pressure    float64
	Humidity    float64
	WindSpeed   float64
	WindDeg     float64
	Cloudiness  float64
	Visibility  float64
	Rain1h      float64
	Snow1h      float64
	Sunrise     int64
	Sunset      int64
}

// Reading maps the payload onto a Reading. The city is the payload's own name
// when it has one, otherwise fallbackCity.
func (p Payload) Reading(fallbackCity string) Reading {
	city := fallbackCity
	if p.Name != nil && *p.Name != "" {
		city = *p.Name
	}

	nan := math.NaN()
	r := Reading{
		City:        city,
		Temperature: nan,
		FeelsLike:   nan,
		Pressure:    nan,
		Humidity:    nan,
		WindSpeed:   nan,
		WindDeg:     nan,
		Cloudiness:  nan,
		Visibility:  floatOr(p.Visibility, nan),
	}

	if m := p.Main; m != nil {
		r.Temperature = floatOr(m.Temp, nan)
		r.FeelsLike = floatOr(m.FeelsLike, nan)
		r.Pressure = floatOr(m.Pressure, nan)
		r.Humidity = floatOr(m.Humidity, nan)
	}
	if w := p.Wind; w != nil {
		r.WindSpeed = floatOr(w.Speed, nan)
		r.WindDeg = floatOr(w.Deg, nan)
	}
	if c := p.Clouds; c != nil {
		r.Cloudiness = floatOr(c.All, nan)
	}
	if p.Rain != nil {
		r.Rain1h = floatOr(p.Rain.OneH, 0)
	}
	if p.Snow != nil {
		r.Snow1h = floatOr(p.Snow.OneH, 0)
	}
	if s := p.Sys; s != nil {
		r.Sunrise = intOr(s.Sunrise, 0)
		r.Sunset = intOr(s.Sunset, 0)
	}

	return r
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}
