package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(params map[string]string, env map[string]string) *Source {
	return &Source{
		Params: params,
		Getenv: func(key string) string { return env[key] },
	}
}

func Test_LoadSeveraConfig_FromSSM(t *testing.T) {
	//Arrange
	src := newTestSource(map[string]string{
		"/timebank/SEVERA_BASE_URL":      "https://severa.example.com/",
		"/timebank/SEVERA_CLIENT_ID":     "client",
		"/timebank/SEVERA_CLIENT_SECRET": "secret",
	}, nil)

	//Act
	cfg, err := LoadSeveraConfig(src)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "https://severa.example.com", cfg.BaseURL)
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
}

func Test_LoadSeveraConfig_EnvironmentFallback(t *testing.T) {
	//Arrange
	src := newTestSource(map[string]string{
		"/timebank/SEVERA_BASE_URL": "https://severa.example.com",
	}, map[string]string{
		"SEVERA_CLIENT_ID":     "env-client",
		"SEVERA_CLIENT_SECRET": "env-secret",
	})

	//Act
	cfg, err := LoadSeveraConfig(src)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
}

func Test_LoadSeveraConfig_ReportsAllMissing(t *testing.T) {
	//Arrange
	src := newTestSource(nil, nil)

	//Act
	_, err := LoadSeveraConfig(src)

	//Assert
	require.Error(t, err)
	assert.Equal(t, "missing configuration parameters: SEVERA_BASE_URL, SEVERA_CLIENT_ID, SEVERA_CLIENT_SECRET", err.Error())
}

func Test_LoadDriveConfig_PDFFolderDefaultsToBaseFolder(t *testing.T) {
	//Arrange
	src := newTestSource(map[string]string{
		"/timebank/GOOGLE_DRIVE_CREDENTIALS":    "{}",
		"/timebank/GOOGLE_DRIVE_BASE_FOLDER_ID": "base",
	}, nil)

	//Act
	cfg, err := LoadDriveConfig(src)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.PDFFolderID)
	assert.Empty(t, cfg.ArchiveBucket)
}

func Test_LoadDatabaseConfig_PrefersProxy(t *testing.T) {
	//Arrange
	src := newTestSource(map[string]string{
		"/timebank/DATABASE_RDS_PROXY_URL": "proxy.local",
		"/timebank/DATABASE_NAME":          "timebank",
		"/timebank/DATABASE_USERNAME":      "user",
		"/timebank/DATABASE_PASSWORD":      "pass",
	}, nil)

	//Act
	cfg, err := LoadDatabaseConfig(src)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "proxy.local", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "require", cfg.SSLMode)
}

func Test_LoadCorsConfig_SplitsOrigins(t *testing.T) {
	//Arrange
	src := newTestSource(map[string]string{
		"/timebank/ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
	}, nil)

	//Act
	cfg, err := LoadCorsConfig(src)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
