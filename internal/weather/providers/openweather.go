package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-exporter/internal/weather"
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, breakerFailures int) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: newBreaker("openweather", breakerFailures),
	}
}

// SetBaseURL points the provider at a different endpoint.
func (p *OpenWeatherProvider) SetBaseURL(u string) {
	p.baseURL = u
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, q weather.Query) (weather.Payload, error) {
	if p.apiKey == "" {
		return weather.Payload{}, &weather.FetchError{Reason: weather.ReasonNoCredential}
	}

	values := url.Values{}
	values.Set("q", q.City)
	values.Set("appid", p.apiKey)
	values.Set("units", string(q.Units))

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Payload{}, &weather.FetchError{Reason: weather.ReasonTransport, Err: err}
	}

	body, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Payload{}, err
	}

	var payload weather.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Payload{}, &weather.FetchError{Reason: weather.ReasonMalformedBody, Err: err}
	}
	if payload.Main == nil {
		return weather.Payload{}, &weather.FetchError{Reason: weather.ReasonMalformedBody, Err: errMissingMain}
	}

	return payload, nil
}
