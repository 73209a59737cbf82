package models

// KeycloakUserRepresentation is the user as returned by the Keycloak admin API
type KeycloakUserRepresentation struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Email      string              `json:"email"`
	Enabled    bool                `json:"enabled"`
	Attributes map[string][]string `json:"attributes"`
}

// KeycloakUser is a Keycloak user enriched with the ids of the linked Severa and Forecast accounts
type KeycloakUser struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsActive   bool   `json:"isActive"`
	SeveraGuid string `json:"severaGuid"`
	ForecastID int64  `json:"forecastId"`
}
