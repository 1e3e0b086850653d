package weather

import (
	"encoding/json"
	"math"
	"testing"
)

func decodePayload(t *testing.T, body string) Payload {
	t.Helper()
	var p Payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return p
}

func TestReadingFullPayload(t *testing.T) {
	p := decodePayload(t, `{
		"name": "Oslo",
		"main": {"temp": -3.5, "feels_like": -8.1, "pressure": 1021, "humidity": 84},
		"wind": {"speed": 4.2, "deg": 250},
		"clouds": {"all": 75},
		"visibility": 9000,
		"rain": {"1h": 0.4},
		"snow": {"1h": 1.25},
		"sys": {"sunrise": 1700000000, "sunset": 1700030000}
	}`)

	r := p.Reading("Astana")

	want := Reading{
		City: "Oslo", Temperature: -3.5, FeelsLike: -8.1, Pressure: 1021, Humidity: 84,
		WindSpeed: 4.2, WindDeg: 250, Cloudiness: 75, Visibility: 9000,
		Rain1h: 0.4, Snow1h: 1.25, Sunrise: 1700000000, Sunset: 1700030000,
	}
	if r != want {
		t.Fatalf("unexpected reading:\n got %+v\nwant %+v", r, want)
	}
}

func TestReadingDefaultsForMissingFields(t *testing.T) {
	r := Payload{}.Reading("Astana")

	if r.City != "Astana" {
		t.Fatalf("expected fallback city, got %q", r.City)
	}
	for name, v := range map[string]float64{
		"temperature": r.Temperature, "feels_like": r.FeelsLike, "pressure": r.Pressure,
		"humidity": r.Humidity, "wind_speed": r.WindSpeed, "wind_deg": r.WindDeg,
		"cloudiness": r.Cloudiness, "visibility": r.Visibility,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s: expected NaN, got %v", name, v)
		}
	}
	if r.Rain1h != 0 || r.Snow1h != 0 || r.Sunrise != 0 || r.Sunset != 0 {
		t.Fatalf("expected zero accumulations, got %+v", r)
	}
}

func TestReadingPartialPayload(t *testing.T) {
	p := decodePayload(t, `{"name":"Paris","main":{"temp":9.5,"humidity":70},"wind":{},"clouds":{},"sys":{}}`)
	r := p.Reading("Astana")

	if r.City != "Paris" {
		t.Fatalf("expected Paris, got %q", r.City)
	}
	if r.Temperature != 9.5 || r.Humidity != 70 {
		t.Fatalf("unexpected temp/humidity: %v %v", r.Temperature, r.Humidity)
	}
	for name, v := range map[string]float64{
		"feels_like": r.FeelsLike, "pressure": r.Pressure, "wind_speed": r.WindSpeed,
		"wind_deg": r.WindDeg, "cloudiness": r.Cloudiness, "visibility": r.Visibility,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s: expected NaN, got %v", name, v)
		}
	}
	if r.Rain1h != 0 || r.Snow1h != 0 || r.Sunrise != 0 || r.Sunset != 0 {
		t.Fatalf("expected zero accumulations, got %+v", r)
	}
}

func TestReadingCityLabelNeverEmpty(t *testing.T) {
	empty := ""
	cases := map[string]Payload{
		"absent name": {},
		"empty name":  {Name: &empty},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			if got := p.Reading("Astana").City; got != "Astana" {
				t.Fatalf("expected fallback city, got %q", got)
			}
		})
	}
}
