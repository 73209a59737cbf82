package data

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"timebank/lib/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetProjects_Success(t *testing.T) {
	//Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects" || r.Header.Get("X-FORECAST-API-KEY") != "api-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = io.WriteString(w, `[
			{"id":1,"company_project_id":101,"name":"Portal","status":"GREEN","stage":"RUNNING","start_date":"2024-01-01","end_date":null,"color":"#fff","estimation_units":"HOURS"}
		]`)
	}))
	defer server.Close()
	repository := NewForecastRepository(config.ForecastConfig{BaseURL: server.URL, APIKey: "api-key"}, logrus.New())

	//Act
	projects, err := repository.GetProjects(context.Background())

	//Assert
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, int64(101), projects[0].CompanyProjectID)
	assert.Equal(t, "Portal", projects[0].Name)
	require.NotNil(t, projects[0].StartDate)
	assert.Equal(t, "2024-01-01", *projects[0].StartDate)
	assert.Nil(t, projects[0].EndDate)
}

func Test_GetProjects_Forbidden(t *testing.T) {
	//Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	repository := NewForecastRepository(config.ForecastConfig{BaseURL: server.URL, APIKey: "wrong"}, logrus.New())

	//Act
	_, err := repository.GetProjects(context.Background())

	//Assert
	require.Error(t, err)
	assert.Equal(t, "failed to fetch forecast projects: 403 - Forbidden", err.Error())
}
