// Package osrm implements the route provider boundary against an
// OSRM-compatible HTTP endpoint.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"placebook/config"
	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	defaultTimeout = 15 * time.Second
	defaultProfile = "driving"

	codeOK      = "Ok"
	codeNoRoute = "NoRoute"
)

type client struct {
	baseURL string
	profile string
	http    *http.Client
}

// NewClient creates a route provider backed by an OSRM endpoint.
func NewClient(cfg *config.RoutingConfig) service.RouteProvider {
	timeout := defaultTimeout
	profile := defaultProfile
	baseURL := ""
	if cfg != nil {
		baseURL = cfg.BaseURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.Profile != "" {
			profile = cfg.Profile
		}
	}

	return &client{
		baseURL: baseURL,
		profile: profile,
		http:    &http.Client{Timeout: timeout},
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64          `json:"distance"` // meters
		Duration float64          `json:"duration"` // seconds
		Geometry geojson.Geometry `json:"geometry"` // LineString, geometries=geojson
	} `json:"routes"`
}

// Route requests exactly one driving route; alternates stay disabled.
func (c *client) Route(ctx context.Context, origin, destination entity.Coordinate) ([]entity.Route, error) {
	query := url.Values{}
	query.Set("alternatives", "false")
	query.Set("overview", "full")
	query.Set("geometries", "geojson")

	// OSRM takes lon,lat pairs.
	path := fmt.Sprintf("/route/v1/%s/%f,%f;%f,%f",
		c.profile, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build routing request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "routing request failed")
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "failed to decode routing response")
	}

	switch decoded.Code {
	case codeOK:
	case codeNoRoute:
		return nil, service.ErrRouteNotFound
	default:
		return nil, errors.Errorf("routing provider returned code %q (HTTP %s)", decoded.Code, resp.Status)
	}

	if len(decoded.Routes) == 0 {
		return nil, service.ErrRouteNotFound
	}

	routes := make([]entity.Route, 0, len(decoded.Routes))
	for _, raw := range decoded.Routes {
		line, ok := raw.Geometry.Geometry().(orb.LineString)
		if !ok {
			return nil, errors.Errorf("unexpected route geometry type %T", raw.Geometry.Geometry())
		}

		polyline := make([]entity.Coordinate, 0, len(line))
		for _, point := range line {
			polyline = append(polyline, entity.Coordinate{Lat: point.Lat(), Lng: point.Lon()})
		}

		routes = append(routes, entity.Route{
			Polyline:        polyline,
			DistanceMeters:  raw.Distance,
			DurationSeconds: raw.Duration,
		})
	}

	return routes, nil
}
