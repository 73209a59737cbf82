package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"timebank/lib/config"
	"timebank/lib/constants"
	"timebank/lib/models"

	"github.com/sirupsen/logrus"
)

// HTTPClientInterface is the subset of *http.Client used by the REST repositories
type HTTPClientInterface interface {
	Do(req *http.Request) (*http.Response, error)
}

// SeveraRepository defines the Severa operations exposed to handlers.
// Every call performs its own token exchange; nothing is cached between calls.
type SeveraRepository interface {
	// GetFlextimeByUser returns Severa's flextime payload verbatim. An empty eventDate means yesterday.
	GetFlextimeByUser(ctx context.Context, severaUserGuid, eventDate string) (json.RawMessage, error)
	GetResourceAllocation(ctx context.Context, severaUserGuid string) ([]models.ResourceAllocation, error)
	GetPhasesByProject(ctx context.Context, severaProjectGuid string) ([]models.Phase, error)
	// GetWorkHours scopes by user guid first, then project guid, see SelectWorkHoursEndpoint
	GetWorkHours(ctx context.Context, selector WorkHoursSelector) ([]models.WorkHours, error)
}

// SeveraDao implements SeveraRepository against the Severa REST API
type SeveraDao struct {
	Config config.SeveraConfig
	HTTP   HTTPClientInterface
	Logger *logrus.Logger
	Now    func() time.Time
}

// NewSeveraRepository creates a new SeveraRepository instance
func NewSeveraRepository(cfg config.SeveraConfig, logger *logrus.Logger) SeveraRepository {
	return &SeveraDao{
		Config: cfg,
		HTTP:   &http.Client{},
		Logger: logger,
		Now:    time.Now,
	}
}

// ObtainAccessToken exchanges the client credentials for a bearer token
func (dao *SeveraDao) ObtainAccessToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(models.SeveraTokenRequest{
		ClientID:     dao.Config.ClientID,
		ClientSecret: dao.Config.ClientSecret,
		Scope:        constants.SEVERA_SCOPE,
	})
	if err != nil {
		return "", &AuthFailure{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dao.Config.BaseURL+"/v1/token", bytes.NewReader(body))
	if err != nil {
		return "", &AuthFailure{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := dao.HTTP.Do(req)
	if err != nil {
		return "", &AuthFailure{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthFailure{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	var token models.SeveraTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &AuthFailure{Err: fmt.Errorf("decoding token response: %w", err)}
	}
	if token.AccessToken == "" {
		return "", &AuthFailure{Err: errors.New("token response did not contain access_token")}
	}
	return token.AccessToken, nil
}

// GetFlextimeByUser fetches the flextime balance of a user on eventDate
func (dao *SeveraDao) GetFlextimeByUser(ctx context.Context, severaUserGuid, eventDate string) (json.RawMessage, error) {
	if eventDate == "" {
		eventDate = dao.yesterday()
	}

	var flextime json.RawMessage
	if err := dao.getJSON(ctx, "flextime", flextimePath(severaUserGuid, eventDate), &flextime); err != nil {
		return nil, err
	}
	return flextime, nil
}

// GetResourceAllocation fetches the resource allocations of a user
func (dao *SeveraDao) GetResourceAllocation(ctx context.Context, severaUserGuid string) ([]models.ResourceAllocation, error) {
	var items []models.SeveraResourceAllocationItem
	if err := dao.getJSON(ctx, "resource allocation", resourceAllocationPath(severaUserGuid), &items); err != nil {
		return nil, err
	}
	return MapResourceAllocations(items), nil
}

// GetPhasesByProject fetches the phases of a project
func (dao *SeveraDao) GetPhasesByProject(ctx context.Context, severaProjectGuid string) ([]models.Phase, error) {
	var items []models.SeveraPhaseItem
	if err := dao.getJSON(ctx, "phases", phasesPath(severaProjectGuid), &items); err != nil {
		return nil, err
	}
	return MapPhases(items)
}

// GetWorkHours fetches work hours from the endpoint chosen for selector
func (dao *SeveraDao) GetWorkHours(ctx context.Context, selector WorkHoursSelector) ([]models.WorkHours, error) {
	if dao.Logger != nil && dao.Logger.IsLevelEnabled(logrus.DebugLevel) {
		dao.Logger.WithFields(logrus.Fields{
			"severa_user_guid":    selector.SeveraUserGuid,
			"severa_project_guid": selector.SeveraProjectGuid,
			"endpoint":            SelectWorkHoursEndpoint(selector).String(),
			"operation":           "GetWorkHours",
		}).Debug("Fetching Severa work hours")
	}

	var items []models.SeveraWorkHoursItem
	if err := dao.getJSON(ctx, "work hours", WorkHoursPath(selector), &items); err != nil {
		return nil, err
	}
	return MapWorkHours(items)
}

func (dao *SeveraDao) yesterday() string {
	now := time.Now
	if dao.Now != nil {
		now = dao.Now
	}
	return now().AddDate(0, 0, -1).Format(constants.DATE_LAYOUT)
}

// getJSON acquires a token, GETs path and decodes the body into out
func (dao *SeveraDao) getJSON(ctx context.Context, resource, path string, out interface{}) error {
	token, err := dao.ObtainAccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dao.Config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", resource, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	// Severa expects this exact spelling; Header.Set would canonicalize it to Client_id
	req.Header["Client_Id"] = []string{dao.Config.ClientID}

	resp, err := dao.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamFailure{Resource: resource, StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponse{Resource: resource, Err: err}
	}
	return nil
}
