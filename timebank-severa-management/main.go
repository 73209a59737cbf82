// Package main implements the Severa Lambda.
//
// It exposes the Severa resources the timebank frontend needs (flextime, resource
// allocations, phases and work hours) and reshapes them into the local schema.
// Every request performs its own Severa token exchange; nothing is cached between
// invocations apart from the configuration loaded at cold start.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"timebank/lib/api"
	"timebank/lib/auth"
	"timebank/lib/clients"
	"timebank/lib/config"
	"timebank/lib/constants"
	"timebank/lib/data"
	"timebank/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger           *logrus.Logger
	isLocal          bool
	ssmRepository    data.SSMRepository
	severaRepository data.SeveraRepository
)

// Handler processes API Gateway requests for Severa resources
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":      request.HTTPMethod,
		"resource":    request.Resource,
		"path_params": request.PathParameters,
		"operation":   "Handler",
	}).Debug("Processing Severa request")

	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"subject":   claims.Subject,
		"operation": "Handler",
	}).Debug("User authenticated successfully")

	switch {
	case request.Resource == "/severa/flextime/{severaUserGuid}" && request.HTTPMethod == "GET":
		return handleGetFlextime(ctx, request)
	case request.Resource == "/severa/users/{severaUserId}/resourceAllocations" && request.HTTPMethod == "GET":
		return handleGetResourceAllocations(ctx, request)
	case request.Resource == "/severa/projects/{severaProjectId}/phases" && request.HTTPMethod == "GET":
		return handleGetPhases(ctx, request)
	case request.Resource == "/severa/workhours" && request.HTTPMethod == "GET":
		return handleGetWorkHours(ctx, request)
	default:
		logger.WithFields(logrus.Fields{
			"method":    request.HTTPMethod,
			"resource":  request.Resource,
			"operation": "Handler",
		}).Warn("Endpoint not found")
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleGetFlextime handles GET /severa/flextime/{severaUserGuid} with optional eventDate query parameter
func handleGetFlextime(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	severaUserGuid := request.PathParameters["severaUserGuid"]
	if severaUserGuid == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: severaUserGuid", logger), nil
	}

	eventDate := request.QueryStringParameters["eventDate"]
	if eventDate != "" {
		if _, err := time.Parse(constants.DATE_LAYOUT, eventDate); err != nil {
			return api.ErrorResponse(http.StatusBadRequest, "Invalid eventDate, expected YYYY-MM-DD", logger), nil
		}
	}

	flextime, err := severaRepository.GetFlextimeByUser(ctx, severaUserGuid, eventDate)
	if err != nil {
		return severaErrorResponse(err, "Failed to get flextime"), nil
	}

	return api.SuccessResponse(http.StatusOK, flextime, logger), nil
}

// handleGetResourceAllocations handles GET /severa/users/{severaUserId}/resourceAllocations
func handleGetResourceAllocations(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	severaUserID := request.PathParameters["severaUserId"]
	if severaUserID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: severaUserId", logger), nil
	}

	allocations, err := severaRepository.GetResourceAllocation(ctx, severaUserID)
	if err != nil {
		return severaErrorResponse(err, "Failed to get resource allocations"), nil
	}

	return api.SuccessResponse(http.StatusOK, allocations, logger), nil
}

// handleGetPhases handles GET /severa/projects/{severaProjectId}/phases
func handleGetPhases(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	severaProjectID := request.PathParameters["severaProjectId"]
	if severaProjectID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: severaProjectId", logger), nil
	}

	phases, err := severaRepository.GetPhasesByProject(ctx, severaProjectID)
	if err != nil {
		return severaErrorResponse(err, "Failed to get phases"), nil
	}

	return api.SuccessResponse(http.StatusOK, phases, logger), nil
}

// handleGetWorkHours handles GET /severa/workhours?severaUserGuid=&severaProjectGuid=.
// When both are given the user filter is applied and the project filter is ignored.
func handleGetWorkHours(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	selector := data.WorkHoursSelector{
		SeveraUserGuid:    request.QueryStringParameters["severaUserGuid"],
		SeveraProjectGuid: request.QueryStringParameters["severaProjectGuid"],
	}

	workHours, err := severaRepository.GetWorkHours(ctx, selector)
	if err != nil {
		return severaErrorResponse(err, "Failed to get work hours"), nil
	}

	return api.SuccessResponse(http.StatusOK, workHours, logger), nil
}

// severaErrorResponse maps the Severa error kinds onto HTTP responses
func severaErrorResponse(err error, message string) events.APIGatewayProxyResponse {
	logger.WithError(err).Error(message)

	var authErr *data.AuthFailure
	var upstreamErr *data.UpstreamFailure
	var malformedErr *data.MalformedResponse
	switch {
	case errors.As(err, &authErr):
		details := ""
		if authErr.StatusCode != 0 {
			details = fmt.Sprintf("Severa token exchange returned %d - %s", authErr.StatusCode, authErr.StatusText)
		}
		return api.ErrorResponseWithDetails(http.StatusInternalServerError, message, details, logger)
	case errors.As(err, &upstreamErr):
		details := fmt.Sprintf("Severa returned %d - %s", upstreamErr.StatusCode, upstreamErr.StatusText)
		return api.ErrorResponseWithDetails(http.StatusInternalServerError, message, details, logger)
	case errors.As(err, &malformedErr):
		return api.ErrorResponseWithDetails(http.StatusBadGateway, message, malformedErr.Error(), logger)
	default:
		return api.ErrorResponse(http.StatusInternalServerError, message, logger)
	}
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing Severa Lambda")
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

	severaConfig, err := config.LoadSeveraConfig(config.NewSource(ssmParams))
	if err != nil {
		return err
	}
	severaRepository = data.NewSeveraRepository(severaConfig, logger)

	logger.WithField("operation", "setup").Info("Severa Lambda initialization completed successfully")
	return nil
}
