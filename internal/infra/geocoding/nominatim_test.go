package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placebook/config"
	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.GeocodingProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewNominatimClient(&config.GeocodingConfig{
		BaseURL:   server.URL,
		UserAgent: "placebook-test",
		Timeout:   2 * time.Second,
	})
}

func TestNominatimClient_Forward(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "eiffel tower", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "placebook-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"48.8584","lon":"2.2945","name":"Tour Eiffel","type":"attraction"}]`))
	})

	placemark, err := client.Forward(context.Background(), "eiffel tower")
	require.NoError(t, err)
	assert.InDelta(t, 48.8584, placemark.Coordinate.Lat, 1e-9)
	assert.InDelta(t, 2.2945, placemark.Coordinate.Lng, 1e-9)
	assert.Equal(t, "Tour Eiffel", placemark.Name)
	assert.Equal(t, "attraction", placemark.Category)
}

func TestNominatimClient_Forward_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := client.Forward(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNoMatch)
}

func TestNominatimClient_Forward_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Forward(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocoding provider returned")
}

func TestNominatimClient_Reverse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "street and number",
			body:     `{"address":{"road":"Baker Street","house_number":"221"}}`,
			expected: "Baker Street, 221",
		},
		{
			name:     "street only",
			body:     `{"address":{"road":"Baker Street"}}`,
			expected: "Baker Street",
		},
		{
			name:     "no street",
			body:     `{"address":{}}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reverse", r.URL.Path)
				assert.NotEmpty(t, r.URL.Query().Get("lat"))
				assert.NotEmpty(t, r.URL.Query().Get("lon"))

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			address, err := client.Reverse(context.Background(), entity.Coordinate{Lat: 51.5237, Lng: -0.1585})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, address)
		})
	}
}

func TestNominatimClient_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Forward(ctx, "slow")
		done <- err
	}()

	<-started
	cancel()

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
