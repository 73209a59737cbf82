package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"timebank/lib/clients"
	"timebank/lib/config"
	"timebank/lib/data"
	"timebank/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger        *logrus.Logger
	isLocal       bool
	ssmRepository data.SSMRepository
	corsConfig    config.CorsConfig
)

// Handler answers CORS preflight requests for the allowed origins
func Handler(request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestOrigin := originHeader(request.Headers)
	if requestOrigin == "" {
		logger.WithField("operation", "Handler").Warn("origin is not present in the request headers")
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	for _, allowedOrigin := range corsConfig.AllowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == requestOrigin {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers: map[string]string{
					"Access-Control-Allow-Origin":      requestOrigin,
					"Access-Control-Allow-Headers":     "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
					"Access-Control-Allow-Methods":     "GET, PUT, DELETE, POST, OPTIONS",
					"Access-Control-Allow-Credentials": "true",
				},
			}, nil
		}
	}

	logger.WithFields(logrus.Fields{
		"origin":    requestOrigin,
		"operation": "Handler",
	}).Warn("Unauthorized origin")
	return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
}

// originHeader reads the origin header regardless of the casing API Gateway forwarded
func originHeader(headers map[string]string) string {
	if origin, ok := headers["origin"]; ok {
		return origin
	}
	return headers["Origin"]
}

func main() {
	if err := setup(context.Background()); err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Fatal("Error initializing CORS Lambda")
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

	corsConfig, err = config.LoadCorsConfig(config.NewSource(ssmParams))
	return err
}
