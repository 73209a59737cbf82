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
	logger         *logrus.Logger
	isLocal        bool
	ssmRepository  data.SSMRepository
	memoRepository data.MemoRepository
)

// Handler processes API Gateway requests for memo conversion
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	claims, err := auth.ExtractClaimsFromRequest(request)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	switch {
	case request.Resource == "/memos/pdf" && request.HTTPMethod == "POST":
		return handleConvertMemos(ctx, claims)
	default:
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleConvertMemos handles POST /memos/pdf
func handleConvertMemos(ctx context.Context, claims *auth.Claims) (events.APIGatewayProxyResponse, error) {
	files, err := memoRepository.ConvertMemosToPDF(ctx)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"subject":   claims.Subject,
			"error":     err.Error(),
			"operation": "handleConvertMemos",
		}).Error("Failed to convert memos")
		return api.ErrorResponseWithDetails(http.StatusInternalServerError, "Failed to convert memos", err.Error(), logger), nil
	}

	logger.WithFields(logrus.Fields{
		"subject":   claims.Subject,
		"count":     len(files),
		"operation": "handleConvertMemos",
	}).Info("Memos converted to PDF")

	if files == nil {
		files = []models.MemoPDF{}
	}
	return api.SuccessResponse(http.StatusOK, models.MemoConversionResponse{
		Message: "Files created successfully",
		Files:   files,
	}, logger), nil
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing memo Lambda")
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

	driveConfig, err := config.LoadDriveConfig(config.NewSource(ssmParams))
	if err != nil {
		return err
	}

	driveClient, err := clients.NewDriveClient(ctx, driveConfig.CredentialsJSON)
	if err != nil {
		return err
	}

	if driveConfig.ArchiveBucket == "" {
		memoRepository = data.NewMemoRepository(driveClient, nil, driveConfig, logger)
	} else {
		archive := clients.NewS3Client(isLocal, driveConfig.ArchiveBucket)
		memoRepository = data.NewMemoRepository(driveClient, archive, driveConfig, logger)
	}
	return nil
}
