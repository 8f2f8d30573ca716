// Package geocode resolves street addresses to coordinates with the Google Maps Geocoding API.
package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

var ErrNoResult = errors.New("geocode: no result")

type Client struct {
	APIKey   string
	Endpoint string
	HTTP     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		Endpoint: DefaultEndpoint,
		HTTP:     &http.Client{Timeout: 5 * time.Second},
	}
}

type response struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the first match for address.
func (c *Client) Geocode(address string) (float64, float64, error) {
	if c == nil || c.APIKey == "" {
		return 0, 0, errors.New("geocode: api key not configured")
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)

	res, err := c.HTTP.Get(c.Endpoint + "?" + q.Encode())
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode: unexpected status %d", res.StatusCode)
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("geocode decode: %w", err)
	}
	if body.Status == "ZERO_RESULTS" || len(body.Results) == 0 {
		return 0, 0, ErrNoResult
	}
	if body.Status != "OK" {
		return 0, 0, fmt.Errorf("geocode: %s %s", body.Status, body.ErrorMessage)
	}

	loc := body.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
