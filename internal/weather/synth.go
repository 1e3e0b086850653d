package weather

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

var rainFactors = [...]float64{0, 0, 0, 0.3, 0.7}

// Synthesizer produces plausible weather without any network access. The base
// temperature follows a slow sine over t; everything else is bounded noise.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSynthesizer creates a Synthesizer. A nil rng seeds one from the clock and
// a nil now uses time.Now.
func NewSynthesizer(rng *rand.Rand, now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Synthesizer{rng: rng, now: now}
}

// Generate builds a payload for city at t seconds since the epoch. Sunrise and
// sunset are derived from the wall clock, not t.
func (s *Synthesizer) Generate(t float64, city string) Payload {
	s.mu.Lock()
	defer s.mu.Unlock()

	temp := 12 + 8*math.Sin(t/180) + s.uniform(-1, 1)
	feels := temp - s.uniform(0, 1.2)
	pressure := 1013 + s.uniform(-10, 10)
	humidity := clamp(60+s.uniform(-20, 20), 25, 90)
	windSpeed := math.Max(0, 3+s.uniform(-1, 2))
	windDeg := s.uniform(0, 360)
	clouds := clamp(50+s.uniform(-40, 40), 0, 100)
	visibility := math.Max(2000, 10000+s.uniform(-1000, 1000))
	rain := rainFactors[s.rng.IntN(len(rainFactors))] * s.rng.Float64()
	snow := 0.0

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sunrise := midnight.Add(7 * time.Hour).Unix()
	sunset := midnight.Add(18 * time.Hour).Unix()

	return Payload{
		Name: &city,
		Main: &MainBlock{
			Temp:      &temp,
			FeelsLike: &feels,
			Pressure:  &pressure,
			Humidity:  &humidity,
		},
		Wind:       &WindBlock{Speed: &windSpeed, Deg: &windDeg},
		Clouds:     &CloudsBlock{All: &clouds},
		Visibility: &visibility,
		Rain:       &PrecipBlock{OneH: &rain},
		Snow:       &PrecipBlock{OneH: &snow},
		Sys:        &SysBlock{Sunrise: &sunrise, Sunset: &sunset},
	}
}

// uniform draws from [lo, hi).
func (s *Synthesizer) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
