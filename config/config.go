package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Postgres is optional; when absent the catalog runs on the embedded
	// in-memory store.
	Postgres *pgLib.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Catalog configuration for the place catalog engine
	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`

	// Geocoding configuration for the address resolution provider
	Geocoding *GeocodingConfig `json:"geocoding" yaml:"geocoding"`

	// Routing configuration for the route provider
	Routing *RoutingConfig `json:"routing" yaml:"routing"`

	// Location configuration for the device location tracker
	Location *LocationConfig `json:"location" yaml:"location"`

	// QRCode configuration for place share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CatalogConfig defines limits for the place catalog
type CatalogConfig struct {
	// Maximum accepted photo size in bytes (0 = unlimited)
	MaxImageBytes int `json:"maxImageBytes" yaml:"maxImageBytes"`
}

// GeocodingConfig defines the geocoding provider endpoint
type GeocodingConfig struct {
	// Base URL of the Nominatim-compatible endpoint
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// User-Agent sent with every request (required by public Nominatim)
	UserAgent string `json:"userAgent" yaml:"userAgent"`

	// Per-request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// RoutingConfig defines the routing provider endpoint
type RoutingConfig struct {
	// Base URL of the OSRM-compatible endpoint
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Routing profile; the engine only requests driving routes
	Profile string `json:"profile" yaml:"profile"`

	// Per-request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LocationConfig defines the location tracker policy
type LocationConfig struct {
	// Debounce interval before a recentring is considered
	RecenterDebounce time.Duration `json:"recenterDebounce" yaml:"recenterDebounce"`

	// Minimum movement in meters before the map recenters
	RecenterThresholdMeters float64 `json:"recenterThresholdMeters" yaml:"recenterThresholdMeters"`

	// Span of the published region of interest in meters
	RegionSpanMeters float64 `json:"regionSpanMeters" yaml:"regionSpanMeters"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables on top of the file values
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to a path and align each segment with
			// existing YAML keys. Example: GEOCODING_BASEURL -> geocoding.baseUrl
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	return LoadWithEnv[Config]("config", "config", "../config", "../../config")
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(token string) string {
	var builder strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(unicode.ToLower(r))
		}
	}

	return builder.String()
}
