package main

import (
	"context"
	"errors"
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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	logger                    *logrus.Logger
	isLocal                   bool
	ssmRepository             data.SSMRepository
	vacationRequestRepository data.VacationRequestRepository
	newID                     = func() string { return uuid.New().String() }
)

// Handler processes API Gateway requests for vacation request operations
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":      request.HTTPMethod,
		"resource":    request.Resource,
		"path_params": request.PathParameters,
		"operation":   "Handler",
	}).Debug("Processing vacation request")

	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch {
	case request.Resource == "/vacationRequests" && request.HTTPMethod == "POST":
		return handleCreateVacationRequest(ctx, request.Body, claims)
	case request.Resource == "/vacationRequests" && request.HTTPMethod == "GET":
		return handleListVacationRequests(ctx, request.QueryStringParameters["personId"])
	case request.Resource == "/vacationRequests/{id}" && request.HTTPMethod == "GET":
		return handleGetVacationRequest(ctx, request.PathParameters["id"])
	case request.Resource == "/vacationRequests/{id}" && request.HTTPMethod == "PUT":
		return handleUpdateVacationRequest(ctx, request.PathParameters["id"], request.Body, claims)
	case request.Resource == "/vacationRequests/{id}" && request.HTTPMethod == "DELETE":
		return handleDeleteVacationRequest(ctx, request.PathParameters["id"])
	default:
		logger.WithFields(logrus.Fields{
			"method":    request.HTTPMethod,
			"resource":  request.Resource,
			"operation": "Handler",
		}).Warn("Endpoint not found")
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleCreateVacationRequest handles POST /vacationRequests
func handleCreateVacationRequest(ctx context.Context, body string, claims *auth.Claims) (events.APIGatewayProxyResponse, error) {
	var createRequest models.CreateVacationRequestRequest
	if err := api.ParseJSONBody(body, &createRequest); err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}
	if errs := createRequest.Validate(); len(errs) > 0 {
		return api.ValidationErrorResponse("Invalid vacation request", errs, logger), nil
	}

	status := createRequest.Status
	if status == "" {
		status = models.VacationStatusPending
	}

	created, err := vacationRequestRepository.CreateVacationRequest(ctx, &models.VacationRequest{
		ID:        newID(),
		PersonID:  createRequest.PersonID,
		Draft:     createRequest.Draft,
		StartDate: createRequest.StartDate,
		EndDate:   createRequest.EndDate,
		Days:      createRequest.Days,
		Type:      createRequest.Type,
		Status:    status,
		Message:   createRequest.Message,
		CreatedBy: claims.Subject,
		UpdatedBy: claims.Subject,
	})
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create vacation request", logger), nil
	}

	logger.WithFields(logrus.Fields{
		"vacation_request_id": created.ID,
		"person_id":           created.PersonID,
		"operation":           "handleCreateVacationRequest",
	}).Info("Vacation request created")

	return api.SuccessResponse(http.StatusCreated, created, logger), nil
}

// handleListVacationRequests handles GET /vacationRequests with optional personId filter
func handleListVacationRequests(ctx context.Context, personID string) (events.APIGatewayProxyResponse, error) {
	requests, err := vacationRequestRepository.ListVacationRequests(ctx, personID)
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to list vacation requests", logger), nil
	}
	if requests == nil {
		requests = []models.VacationRequest{}
	}
	return api.SuccessResponse(http.StatusOK, requests, logger), nil
}

// handleGetVacationRequest handles GET /vacationRequests/{id}
func handleGetVacationRequest(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: id", logger), nil
	}

	found, err := vacationRequestRepository.GetVacationRequestByID(ctx, id)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Vacation request not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get vacation request", logger), nil
	}
	return api.SuccessResponse(http.StatusOK, found, logger), nil
}

// handleUpdateVacationRequest handles PUT /vacationRequests/{id}
func handleUpdateVacationRequest(ctx context.Context, id, body string, claims *auth.Claims) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: id", logger), nil
	}

	var updateRequest models.UpdateVacationRequestRequest
	if err := api.ParseJSONBody(body, &updateRequest); err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}
	if errs := updateRequest.Validate(); len(errs) > 0 {
		return api.ValidationErrorResponse("Invalid vacation request", errs, logger), nil
	}

	existing, err := vacationRequestRepository.GetVacationRequestByID(ctx, id)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Vacation request not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get vacation request", logger), nil
	}

	existing.Draft = updateRequest.Draft != nil && *updateRequest.Draft
	existing.StartDate = updateRequest.StartDate
	existing.EndDate = updateRequest.EndDate
	existing.Days = updateRequest.Days
	existing.Type = updateRequest.Type
	existing.Status = updateRequest.Status
	existing.Message = updateRequest.Message
	existing.UpdatedBy = claims.Subject

	updated, err := vacationRequestRepository.UpdateVacationRequest(ctx, existing)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Vacation request not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to update vacation request", logger), nil
	}
	return api.SuccessResponse(http.StatusOK, updated, logger), nil
}

// handleDeleteVacationRequest handles DELETE /vacationRequests/{id}
func handleDeleteVacationRequest(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: id", logger), nil
	}

	err := vacationRequestRepository.DeleteVacationRequest(ctx, id)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Vacation request not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to delete vacation request", logger), nil
	}
	return api.NoContentResponse(), nil
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing vacation request Lambda")
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

	dbConfig, err := config.LoadDatabaseConfig(config.NewSource(ssmParams))
	if err != nil {
		return err
	}
	db, err := clients.NewPostgresSQLClient(dbConfig)
	if err != nil {
		return fmt.Errorf("error creating PostgreSQL client: %w", err)
	}

	vacationRequestRepository = data.NewVacationRequestRepository(db, logger)
	return nil
}
