package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"placebook/config"
	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.RouteProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.RoutingConfig{
		BaseURL: server.URL,
		Profile: "driving",
		Timeout: 2 * time.Second,
	})
}

const routeBody = `{
	"code": "Ok",
	"routes": [{
		"distance": 5200.5,
		"duration": 780.2,
		"geometry": {
			"type": "LineString",
			"coordinates": [[121.5654, 25.0330], [121.5170, 25.0478]]
		}
	}]
}`

func TestClient_Route(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"))
		// Coordinates travel as lon,lat pairs.
		assert.Contains(t, r.URL.Path, "121.565400,25.033000;121.517000,25.047800")
		assert.Equal(t, "false", r.URL.Query().Get("alternatives"))
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(routeBody))
	})

	routes, err := client.Route(context.Background(),
		entity.Coordinate{Lat: 25.0330, Lng: 121.5654},
		entity.Coordinate{Lat: 25.0478, Lng: 121.5170})
	require.NoError(t, err)
	require.Len(t, routes, 1)

	assert.InDelta(t, 5200.5, routes[0].DistanceMeters, 1e-9)
	assert.InDelta(t, 780.2, routes[0].DurationSeconds, 1e-9)
	require.Len(t, routes[0].Polyline, 2)
	assert.InDelta(t, 25.0330, routes[0].Polyline[0].Lat, 1e-9)
	assert.InDelta(t, 121.5654, routes[0].Polyline[0].Lng, 1e-9)
}

func TestClient_Route_NoRoute(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	})

	_, err := client.Route(context.Background(),
		entity.Coordinate{Lat: 1, Lng: 1}, entity.Coordinate{Lat: 2, Lng: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrRouteNotFound)
}

func TestClient_Route_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"InvalidQuery"}`))
	})

	_, err := client.Route(context.Background(),
		entity.Coordinate{Lat: 1, Lng: 1}, entity.Coordinate{Lat: 2, Lng: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidQuery")
}

func TestClient_Route_EmptyRoutes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	})

	_, err := client.Route(context.Background(),
		entity.Coordinate{Lat: 1, Lng: 1}, entity.Coordinate{Lat: 2, Lng: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrRouteNotFound)
}
