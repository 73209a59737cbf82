package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"timebank/lib/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockKeycloakRepository struct {
	User *models.KeycloakUser
	Err  error
}

func (m *MockKeycloakRepository) FindUser(ctx context.Context, userID string) (*models.KeycloakUser, error) {
	return m.User, m.Err
}

func findUserRequest(query map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		Resource:              "/keycloak/users",
		QueryStringParameters: query,
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{"sub": "kc-admin"},
		},
	}
}

func setupTest(mock *MockKeycloakRepository) {
	logger = logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	keycloakRepository = mock
}

func Test_FindUser_ReturnsArray(t *testing.T) {
	//Arrange
	setupTest(&MockKeycloakRepository{User: &models.KeycloakUser{ID: "kc-1", SeveraGuid: "sev-1", ForecastID: 7, IsActive: true}})

	//Act
	resp, err := Handler(context.Background(), findUserRequest(map[string]string{"id": "kc-1"}))

	//Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":"kc-1","firstName":"","lastName":"","email":"","isActive":true,"severaGuid":"sev-1","forecastId":7}]`, resp.Body)
}

func Test_FindUser_MissingID(t *testing.T) {
	setupTest(&MockKeycloakRepository{})

	resp, err := Handler(context.Background(), findUserRequest(nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_FindUser_NotFound(t *testing.T) {
	setupTest(&MockKeycloakRepository{})

	resp, err := Handler(context.Background(), findUserRequest(map[string]string{"id": "missing"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_FindUser_KeycloakError(t *testing.T) {
	setupTest(&MockKeycloakRepository{Err: errors.New("keycloak down")})

	resp, err := Handler(context.Background(), findUserRequest(map[string]string{"id": "kc-1"}))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "keycloak down")
}
