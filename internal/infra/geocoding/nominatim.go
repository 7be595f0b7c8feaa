// Package geocoding implements the geocoding provider boundary against a
// Nominatim-compatible HTTP endpoint.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"placebook/config"
	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "placebook"
)

type nominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatimClient creates a geocoding provider backed by Nominatim.
func NewNominatimClient(cfg *config.GeocodingConfig) service.GeocodingProvider {
	timeout := defaultTimeout
	userAgent := defaultUserAgent
	baseURL := ""
	if cfg != nil {
		baseURL = cfg.BaseURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
	}

	return &nominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// searchResult mirrors the jsonv2 response shape of /search and /reverse.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road        string `json:"road"`
		HouseNumber string `json:"house_number"`
	} `json:"address"`
}

// Forward resolves a free-text address to its first/best match.
func (c *nominatimClient) Forward(ctx context.Context, address string) (*service.Placemark, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "jsonv2")
	query.Set("limit", "1")

	var results []searchResult
	if err := c.get(ctx, "/search", query, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, service.ErrNoMatch
	}

	coord, err := parseCoordinate(results[0].Lat, results[0].Lon)
	if err != nil {
		return nil, errors.Wrap(err, "malformed provider coordinate")
	}

	return &service.Placemark{
		Coordinate: coord,
		Name:       results[0].Name,
		Category:   results[0].Type,
	}, nil
}

// Reverse resolves a coordinate to "street, number", street alone when the
// number is unknown, or "" when neither part is known.
func (c *nominatimClient) Reverse(ctx context.Context, coord entity.Coordinate) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))
	query.Set("format", "jsonv2")

	var result searchResult
	if err := c.get(ctx, "/reverse", query, &result); err != nil {
		return "", err
	}

	street := result.Address.Road
	number := result.Address.HouseNumber

	switch {
	case street == "":
		return "", nil
	case number == "":
		return street, nil
	default:
		return street + ", " + number, nil
	}
}

func (c *nominatimClient) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to build geocoding request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("geocoding provider returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode geocoding response")
	}

	return nil
}

func parseCoordinate(lat, lon string) (entity.Coordinate, error) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("parse lat %q: %w", lat, err)
	}

	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("parse lon %q: %w", lon, err)
	}

	return entity.Coordinate{Lat: latF, Lng: lonF}, nil
}
