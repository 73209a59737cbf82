package auth

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithAuthorizer(authorizer map[string]interface{}) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{Authorizer: authorizer},
	}
}

func Test_ExtractClaimsFromRequest_NestedClaims(t *testing.T) {
	//Arrange
	request := requestWithAuthorizer(map[string]interface{}{
		"claims": map[string]interface{}{
			"sub":                "kc-1",
			"email":              "anna@example.com",
			"preferred_username": "anna",
		},
	})

	//Act
	claims, err := ExtractClaimsFromRequest(request)

	//Assert
	require.NoError(t, err)
	assert.Equal(t, &Claims{Subject: "kc-1", Email: "anna@example.com", Username: "anna"}, claims)
}

func Test_ExtractClaimsFromRequest_TopLevelClaims(t *testing.T) {
	//Act
	claims, err := ExtractClaimsFromRequest(requestWithAuthorizer(map[string]interface{}{"sub": "service-account"}))

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "service-account", claims.Subject)
	assert.Empty(t, claims.Email)
}

func Test_ExtractClaimsFromRequest_Missing(t *testing.T) {
	_, err := ExtractClaimsFromRequest(events.APIGatewayProxyRequest{})
	assert.EqualError(t, err, "claims not found in authorizer context")

	_, err = ExtractClaimsFromRequest(requestWithAuthorizer(map[string]interface{}{"email": "x@example.com"}))
	assert.EqualError(t, err, "sub not found or invalid in claims")
}
