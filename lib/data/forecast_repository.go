package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"timebank/lib/config"
	"timebank/lib/models"

	"github.com/sirupsen/logrus"
)

// ForecastRepository defines the Forecast project lookups
type ForecastRepository interface {
	GetProjects(ctx context.Context) ([]models.ForecastProject, error)
}

// ForecastDao implements ForecastRepository against the Forecast REST API
type ForecastDao struct {
	Config config.ForecastConfig
	HTTP   HTTPClientInterface
	Logger *logrus.Logger
}

// NewForecastRepository creates a new ForecastRepository instance
func NewForecastRepository(cfg config.ForecastConfig, logger *logrus.Logger) ForecastRepository {
	return &ForecastDao{
		Config: cfg,
		HTTP:   &http.Client{},
		Logger: logger,
	}
}

// GetProjects lists all projects of the Forecast company
func (dao *ForecastDao) GetProjects(ctx context.Context) ([]models.ForecastProject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dao.Config.BaseURL+"/v1/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}
	req.Header.Set("X-FORECAST-API-KEY", dao.Config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := dao.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch forecast projects: %d - %s", resp.StatusCode, statusText(resp))
	}

	var items []models.ForecastProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode forecast projects: %w", err)
	}

	projects := make([]models.ForecastProject, 0, len(items))
	for _, item := range items {
		projects = append(projects, models.ForecastProject{
			ID:               item.ID,
			CompanyProjectID: item.CompanyProjectID,
			Name:             item.Name,
			Status:           item.Status,
			Stage:            item.Stage,
			StartDate:        item.StartDate,
			EndDate:          item.EndDate,
			Color:            item.Color,
			EstimationUnits:  item.EstimationUnits,
		})
	}
	return projects, nil
}
