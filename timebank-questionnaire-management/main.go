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
	logger                  *logrus.Logger
	isLocal                 bool
	ssmRepository           data.SSMRepository
	questionnaireRepository data.QuestionnaireRepository
	newID                   = func() string { return uuid.New().String() }
)

// Handler processes API Gateway requests for questionnaire operations
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := auth.ExtractClaimsFromRequest(request); err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch {
	case request.Resource == "/questionnaires" && request.HTTPMethod == "GET":
		return handleListQuestionnaires(ctx)
	case request.Resource == "/questionnaires" && request.HTTPMethod == "POST":
		return handleCreateQuestionnaire(ctx, request.Body)
	case request.Resource == "/questionnaires/{id}" && request.HTTPMethod == "GET":
		return handleGetQuestionnaire(ctx, request.PathParameters["id"])
	case request.Resource == "/questionnaires/{id}" && request.HTTPMethod == "DELETE":
		return handleDeleteQuestionnaire(ctx, request.PathParameters["id"])
	default:
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

func handleListQuestionnaires(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	questionnaires, err := questionnaireRepository.ListQuestionnaires(ctx)
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to list questionnaires", logger), nil
	}
	if questionnaires == nil {
		questionnaires = []models.Questionnaire{}
	}
	return api.SuccessResponse(http.StatusOK, questionnaires, logger), nil
}

func handleCreateQuestionnaire(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	var createRequest models.CreateQuestionnaireRequest
	if err := api.ParseJSONBody(body, &createRequest); err != nil {
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}
	if errs := createRequest.Validate(); len(errs) > 0 {
		return api.ValidationErrorResponse("Invalid questionnaire", errs, logger), nil
	}

	created, err := questionnaireRepository.CreateQuestionnaire(ctx, &models.Questionnaire{
		ID:          newID(),
		Title:       createRequest.Title,
		Description: createRequest.Description,
		Options:     createRequest.Options,
		PassScore:   createRequest.PassScore,
	})
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create questionnaire", logger), nil
	}
	return api.SuccessResponse(http.StatusCreated, created, logger), nil
}

func handleGetQuestionnaire(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: id", logger), nil
	}

	questionnaire, err := questionnaireRepository.GetQuestionnaireByID(ctx, id)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Questionnaire not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get questionnaire", logger), nil
	}
	return api.SuccessResponse(http.StatusOK, questionnaire, logger), nil
}

func handleDeleteQuestionnaire(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if id == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing path parameter: id", logger), nil
	}

	err := questionnaireRepository.DeleteQuestionnaire(ctx, id)
	if errors.Is(err, data.ErrNotFound) {
		return api.ErrorResponse(http.StatusNotFound, "Questionnaire not found", logger), nil
	}
	if err != nil {
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to delete questionnaire", logger), nil
	}
	return api.NoContentResponse(), nil
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing questionnaire Lambda")
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

	questionnaireRepository = data.NewQuestionnaireRepository(db, logger)
	return nil
}
