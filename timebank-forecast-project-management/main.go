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
	"timebank/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger             *logrus.Logger
	isLocal            bool
	ssmRepository      data.SSMRepository
	forecastRepository data.ForecastRepository
)

// Handler processes API Gateway requests for Forecast projects
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := auth.ExtractClaimsFromRequest(request); err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	if request.Resource != "/forecast/projects" || request.HTTPMethod != "GET" {
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}

	projects, err := forecastRepository.GetProjects(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to list Forecast projects")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to list projects", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, projects, logger), nil
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing Forecast Lambda")
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

	forecastConfig, err := config.LoadForecastConfig(config.NewSource(ssmParams))
	if err != nil {
		return err
	}
	forecastRepository = data.NewForecastRepository(forecastConfig, logger)
	return nil
}
