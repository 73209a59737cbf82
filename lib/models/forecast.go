package models

// ForecastProjectResponse is a project as returned by the Forecast API
type ForecastProjectResponse struct {
	ID               int64   `json:"id"`
	CompanyProjectID int64   `json:"company_project_id"`
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	Stage            string  `json:"stage"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	Color            string  `json:"color"`
	EstimationUnits  string  `json:"estimation_units"`
}

// ForecastProject is the local shape of a Forecast project
type ForecastProject struct {
	ID               int64   `json:"id"`
	CompanyProjectID int64   `json:"companyProjectId"`
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	Stage            string  `json:"stage"`
	StartDate        *string `json:"startDate,omitempty"`
	EndDate          *string `json:"endDate,omitempty"`
	Color            string  `json:"color"`
	EstimationUnits  string  `json:"estimationUnits"`
}
