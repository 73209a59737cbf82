package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"timebank/lib/api"
	"timebank/lib/auth"
	"timebank/lib/clients"
	"timebank/lib/config"
	"timebank/lib/data"
	"timebank/lib/models"
	"timebank/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger             *logrus.Logger
	isLocal            bool
	ssmRepository      data.SSMRepository
	keycloakRepository data.KeycloakRepository
)

// Handler processes API Gateway requests for Keycloak user lookups
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := auth.ExtractClaimsFromRequest(request); err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch {
	case request.Resource == "/keycloak/users" && request.HTTPMethod == "GET":
		return handleFindUser(ctx, request)
	default:
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleFindUser handles GET /keycloak/users?id=. The user is returned inside a one-element array.
func handleFindUser(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	userID := request.QueryStringParameters["id"]
	if userID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing or invalid query parameter: id", logger), nil
	}

	user, err := keycloakRepository.FindUser(ctx, userID)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"user_id":   userID,
			"error":     err.Error(),
			"operation": "handleFindUser",
		}).Error("Failed to find user from Keycloak")
		return api.ErrorResponseWithDetails(http.StatusInternalServerError, "Failed to retrieve user", err.Error(), logger), nil
	}
	if user == nil {
		return api.ErrorResponse(http.StatusNotFound, "User not found", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, []models.KeycloakUser{*user}, logger), nil
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing Keycloak Lambda")
	}
	lambda.Start(Handler)
}

// setup initializes the Lambda during cold start
func setup(ctx context.Context) error {
	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))
	logger = util.NewLogger(isLocal, os.Getenv("LOG_LEVEL"))

	ssmRepository = &data.SSMDao{
		SSM:    clients.NewSSMClient(isLocal),
		Logger: logger,
	}
	ssmParams, err := ssmRepository.GetParameters(ctx)
	if err != nil {
		return fmt.Errorf("error while getting SSM params from parameter store: %w", err)
	}

	keycloakConfig, err := config.LoadKeycloakConfig(config.NewSource(ssmParams))
	if err != nil {
		return err
	}
	keycloakRepository = data.NewKeycloakRepository(ctx, keycloakConfig, logger)
	return nil
}
