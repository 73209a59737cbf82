package clients

import "os"

const (
	defaultRegion      = "eu-central-1"
	localStackEndpoint = "http://docker.for.mac.host.internal:4566"
)

func awsRegion() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return defaultRegion
}
