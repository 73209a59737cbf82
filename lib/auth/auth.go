package auth

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// Claims represents the Keycloak JWT claims extracted from the API Gateway authorizer context
type Claims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"preferred_username"`
}

// ExtractClaimsFromRequest extracts the Keycloak claims from an API Gateway request
func ExtractClaimsFromRequest(request events.APIGatewayProxyRequest) (*Claims, error) {
	var claimsMap map[string]interface{}
	var ok bool

	// REST API JWT authorizers nest the claims, Lambda authorizers put them at the top level
	if authClaims, exists := request.RequestContext.Authorizer["claims"]; exists {
		claimsMap, ok = authClaims.(map[string]interface{})
	}
	if !ok {
		claimsMap = request.RequestContext.Authorizer
		ok = claimsMap != nil
	}

	if !ok || claimsMap == nil {
		return nil, fmt.Errorf("claims not found in authorizer context")
	}

	subject, ok := claimsMap["sub"].(string)
	if !ok || subject == "" {
		return nil, fmt.Errorf("sub not found or invalid in claims")
	}

	// email and preferred_username are optional for service accounts
	email, _ := claimsMap["email"].(string)
	username, _ := claimsMap["preferred_username"].(string)

	return &Claims{
		Subject:  subject,
		Email:    email,
		Username: username,
	}, nil
}

// ToJSON converts claims to JSON string for logging
func (c *Claims) ToJSON() string {
	data, _ := json.Marshal(c)
	return string(data)
}
