package config

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"timebank/lib/constants"
)

// SeveraConfig holds the connection settings for the Severa REST API
type SeveraConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// KeycloakConfig holds the settings for the Keycloak admin API
type KeycloakConfig struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
}

// ForecastConfig holds the settings for the Forecast API
type ForecastConfig struct {
	BaseURL string
	APIKey  string
}

// DriveConfig holds the settings for the Google Drive memo conversion
type DriveConfig struct {
	CredentialsJSON string
	BaseFolderID    string
	PDFFolderID     string
	ArchiveBucket   string
}

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	Username string
	Password string
	SSLMode  string
}

// CorsConfig holds the origins allowed by the preflight handler
type CorsConfig struct {
	AllowedOrigins []string
}

// Source resolves parameters first from the SSM map and then from the environment.
// A parameter "/timebank/SEVERA_BASE_URL" falls back to the env variable SEVERA_BASE_URL.
type Source struct {
	Params map[string]string
	Getenv func(string) string
}

// NewSource creates a Source backed by the process environment
func NewSource(params map[string]string) *Source {
	return &Source{Params: params, Getenv: os.Getenv}
}

// Lookup returns the value for key and whether it was found and non-empty
func (s *Source) Lookup(key string) (string, bool) {
	if v, ok := s.Params[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	if s.Getenv != nil {
		if v := strings.TrimSpace(s.Getenv(path.Base(key))); v != "" {
			return v, true
		}
	}
	return "", false
}

type collector struct {
	src     *Source
	missing []string
}

func (c *collector) required(key string) string {
	v, ok := c.src.Lookup(key)
	if !ok {
		c.missing = append(c.missing, path.Base(key))
	}
	return v
}

func (c *collector) optional(key, def string) string {
	if v, ok := c.src.Lookup(key); ok {
		return v
	}
	return def
}

func (c *collector) err() error {
	if len(c.missing) == 0 {
		return nil
	}
	sort.Strings(c.missing)
	return fmt.Errorf("missing configuration parameters: %s", strings.Join(c.missing, ", "))
}

// LoadSeveraConfig builds the Severa settings
func LoadSeveraConfig(src *Source) (SeveraConfig, error) {
	c := &collector{src: src}
	cfg := SeveraConfig{
		BaseURL:      strings.TrimRight(c.required(constants.SEVERA_BASE_URL), "/"),
		ClientID:     c.required(constants.SEVERA_CLIENT_ID),
		ClientSecret: c.required(constants.SEVERA_CLIENT_SECRET),
	}
	return cfg, c.err()
}

// LoadKeycloakConfig builds the Keycloak settings
func LoadKeycloakConfig(src *Source) (KeycloakConfig, error) {
	c := &collector{src: src}
	cfg := KeycloakConfig{
		BaseURL:      strings.TrimRight(c.required(constants.KEYCLOAK_BASE_URL), "/"),
		Realm:        c.required(constants.KEYCLOAK_REALM),
		ClientID:     c.required(constants.KEYCLOAK_CLIENT_ID),
		ClientSecret: c.required(constants.KEYCLOAK_CLIENT_SECRET),
	}
	return cfg, c.err()
}

// LoadForecastConfig builds the Forecast settings
func LoadForecastConfig(src *Source) (ForecastConfig, error) {
	c := &collector{src: src}
	cfg := ForecastConfig{
		BaseURL: strings.TrimRight(c.optional(constants.FORECAST_BASE_URL, "https://api.forecast.it/api"), "/"),
		APIKey:  c.required(constants.FORECAST_API_KEY),
	}
	return cfg, c.err()
}

// LoadDriveConfig builds the Google Drive settings. The PDF folder defaults to the base folder.
func LoadDriveConfig(src *Source) (DriveConfig, error) {
	c := &collector{src: src}
	cfg := DriveConfig{
		CredentialsJSON: c.required(constants.GOOGLE_DRIVE_CREDENTIALS),
		BaseFolderID:    c.required(constants.GOOGLE_DRIVE_BASE_FOLDER_ID),
		ArchiveBucket:   c.optional(constants.MEMO_ARCHIVE_BUCKET, ""),
	}
	cfg.PDFFolderID = c.optional(constants.GOOGLE_DRIVE_PDF_FOLDER_ID, cfg.BaseFolderID)
	return cfg, c.err()
}

// LoadDatabaseConfig builds the PostgreSQL settings, preferring the RDS proxy when configured
func LoadDatabaseConfig(src *Source) (DatabaseConfig, error) {
	c := &collector{src: src}
	host := c.optional(constants.DATABASE_RDS_PROXY_URL, "")
	if host == "" {
		host = c.required(constants.DATABASE_RDS_ENDPOINT)
	}
	cfg := DatabaseConfig{
		Host:     host,
		Port:     c.optional(constants.DATABASE_PORT, "5432"),
		Name:     c.required(constants.DATABASE_NAME),
		Username: c.required(constants.DATABASE_USERNAME),
		Password: c.required(constants.DATABASE_PASSWORD),
		SSLMode:  c.optional(constants.SSL_MODE, "require"),
	}
	return cfg, c.err()
}

// LoadCorsConfig builds the CORS settings
func LoadCorsConfig(src *Source) (CorsConfig, error) {
	c := &collector{src: src}
	raw := c.required(constants.ALLOWED_ORIGINS)
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return CorsConfig{AllowedOrigins: origins}, c.err()
}
