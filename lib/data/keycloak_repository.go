package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"timebank/lib/config"
	"timebank/lib/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	keycloakSeveraAttribute   = "severaUserId"
	keycloakForecastAttribute = "forecastId"
)

// KeycloakRepository defines the Keycloak user lookups
type KeycloakRepository interface {
	// FindUser returns nil without error when the user does not exist
	FindUser(ctx context.Context, userID string) (*models.KeycloakUser, error)
}

// KeycloakDao implements KeycloakRepository against the Keycloak admin REST API
type KeycloakDao struct {
	Config config.KeycloakConfig
	HTTP   HTTPClientInterface
	Logger *logrus.Logger
}

// NewKeycloakRepository creates a KeycloakRepository authenticating with the client credentials grant
func NewKeycloakRepository(ctx context.Context, cfg config.KeycloakConfig, logger *logrus.Logger) KeycloakRepository {
	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.BaseURL + "/realms/" + url.PathEscape(cfg.Realm) + "/protocol/openid-connect/token",
	}
	return &KeycloakDao{
		Config: cfg,
		HTTP:   credentials.Client(ctx),
		Logger: logger,
	}
}

// FindUser fetches a single user by id
func (dao *KeycloakDao) FindUser(ctx context.Context, userID string) (*models.KeycloakUser, error) {
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", dao.Config.BaseURL, url.PathEscape(dao.Config.Realm), url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build keycloak request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := dao.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keycloak user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch keycloak user: %d - %s", resp.StatusCode, statusText(resp))
	}

	var representation models.KeycloakUserRepresentation
	if err := json.NewDecoder(resp.Body).Decode(&representation); err != nil {
		return nil, fmt.Errorf("failed to decode keycloak user: %w", err)
	}

	user := MapKeycloakUser(representation)
	return &user, nil
}

// MapKeycloakUser copies the linked Severa guid and Forecast id out of the user attributes.
// A forecastId attribute that is not an integer maps to 0.
func MapKeycloakUser(representation models.KeycloakUserRepresentation) models.KeycloakUser {
	user := models.KeycloakUser{
		ID:        representation.ID,
		FirstName: representation.FirstName,
		LastName:  representation.LastName,
		Email:     representation.Email,
		IsActive:  representation.Enabled,
	}
	if values := representation.Attributes[keycloakSeveraAttribute]; len(values) > 0 {
		user.SeveraGuid = values[0]
	}
	if values := representation.Attributes[keycloakForecastAttribute]; len(values) > 0 {
		if id, err := strconv.ParseInt(values[0], 10, 64); err == nil {
			user.ForecastID = id
		}
	}
	return user
}
