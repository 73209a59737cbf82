package data

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"timebank/lib/config"
	"timebank/lib/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSevera struct {
	server        *httptest.Server
	tokenStatus   int
	tokenCalls    int32
	resourceCalls int32
	lastPath      string
	lastRawQuery  string
	lastHeaders   http.Header
	status        int
	body          string
}

func newFakeSevera(t *testing.T) *fakeSevera {
	f := &fakeSevera{tokenStatus: http.StatusOK, status: http.StatusOK, body: "[]"}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/token" {
			atomic.AddInt32(&f.tokenCalls, 1)
			var body models.SeveraTokenRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if f.tokenStatus != http.StatusOK {
				w.WriteHeader(f.tokenStatus)
				return
			}
			if body.ClientID != "client-id" || body.ClientSecret != "client-secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"token-123"}`)
			return
		}
		atomic.AddInt32(&f.resourceCalls, 1)
		f.lastPath = r.URL.Path
		f.lastRawQuery = r.URL.RawQuery
		f.lastHeaders = r.Header.Clone()
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeSevera) repository() *SeveraDao {
	return &SeveraDao{
		Config: config.SeveraConfig{
			BaseURL:      f.server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
		HTTP:   f.server.Client(),
		Logger: logrus.New(),
		Now: func() time.Time {
			return time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
		},
	}
}

func Test_ObtainAccessToken_Success(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)

	//Act
	token, err := f.repository().ObtainAccessToken(context.Background())

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func Test_ObtainAccessToken_BadCredentials(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	dao := f.repository()
	dao.Config.ClientSecret = "wrong"

	//Act
	_, err := dao.ObtainAccessToken(context.Background())

	//Assert
	var authErr *AuthFailure
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "Unauthorized", authErr.StatusText)
}

func Test_ObtainAccessToken_TransportError(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	dao := f.repository()
	f.server.Close()

	//Act
	_, err := dao.ObtainAccessToken(context.Background())

	//Assert
	var authErr *AuthFailure
	require.True(t, errors.As(err, &authErr))
	assert.Zero(t, authErr.StatusCode)
	assert.Error(t, authErr.Unwrap())
}

func Test_GetFlextimeByUser_DefaultsToYesterday(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `{"userGuid":"u-1","flextimeBalance":12.5}`

	//Act
	flextime, err := f.repository().GetFlextimeByUser(context.Background(), "u-1", "")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "/v1/users/u-1/flextime", f.lastPath)
	assert.Equal(t, "eventdate=2024-02-29", f.lastRawQuery)
	assert.JSONEq(t, f.body, string(flextime))
}

func Test_GetFlextimeByUser_ExplicitDate(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `{"flextimeBalance":1}`

	//Act
	_, err := f.repository().GetFlextimeByUser(context.Background(), "u-1", "2024-01-15")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "eventdate=2024-01-15", f.lastRawQuery)
}

func Test_GetFlextimeByUser_InvalidJSON(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `{not json`

	//Act
	_, err := f.repository().GetFlextimeByUser(context.Background(), "u-1", "")

	//Assert
	var malformed *MalformedResponse
	assert.True(t, errors.As(err, &malformed))
}

func Test_ResourceRequest_SendsSeveraHeaders(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)

	//Act
	_, err := f.repository().GetResourceAllocation(context.Background(), "u-1")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", f.lastHeaders.Get("Authorization"))
	assert.Equal(t, "client-id", f.lastHeaders.Get("Client_Id"))
	assert.Equal(t, "application/json", f.lastHeaders.Get("Content-Type"))
}

func Test_GetResourceAllocation_TokenFailureSkipsUpstream(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.tokenStatus = http.StatusUnauthorized

	//Act
	_, err := f.repository().GetResourceAllocation(context.Background(), "u-1")

	//Assert
	var authErr *AuthFailure
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, int32(0), atomic.LoadInt32(&f.resourceCalls))
}

func Test_GetResourceAllocation_MapsNestedObjects(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{
		"guid":"ra-1","allocationHours":7.5,"calculatedAllocationHours":6,
		"phase":{"guid":"ph-1","name":"Design"},
		"user":{"guid":"u-1","name":"Anna"},
		"project":{"guid":"p-1","name":"Portal","isInternal":true}
	}]`

	//Act
	allocations, err := f.repository().GetResourceAllocation(context.Background(), "u-1")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "/v1/users/u-1/resourceallocations/allocations", f.lastPath)
	require.Len(t, allocations, 1)
	a := allocations[0]
	assert.Equal(t, "ra-1", a.SeveraProjectGuid)
	assert.Equal(t, 7.5, a.AllocationHours)
	assert.Equal(t, 6.0, a.CalculatedAllocationHours)
	assert.Equal(t, "ph-1", *a.Phase.SeveraPhaseGuid)
	assert.Equal(t, "Design", *a.Phase.Name)
	assert.Equal(t, "u-1", *a.Users.SeveraUserGuid)
	assert.Equal(t, "Anna", *a.Users.Name)
	assert.Equal(t, "p-1", *a.Projects.SeveraProjectGuid)
	assert.Equal(t, "Portal", *a.Projects.Name)
	assert.True(t, *a.Projects.IsInternal)
}

func Test_GetResourceAllocation_MissingNestedObjects(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{"guid":"ra-2","allocationHours":1,"calculatedAllocationHours":1}]`

	//Act
	allocations, err := f.repository().GetResourceAllocation(context.Background(), "u-1")

	//Assert
	require.NoError(t, err)
	out, err := json.Marshal(allocations)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"severaProjectGuid":"ra-2","allocationHours":1,"calculatedAllocationHours":1,
		"phase":{},"users":{},"projects":{}
	}]`, string(out))
}

func Test_GetPhasesByProject_Success(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{
		"guid":"ph-1","name":"Build","isCompleted":false,"workHoursEstimate":120,
		"startDate":"2024-01-01","deadLine":"2024-06-30",
		"project":{"guid":"p-1","name":"Portal","isClosed":false}
	}]`

	//Act
	phases, err := f.repository().GetPhasesByProject(context.Background(), "p-1")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "/v1/projects/p-1/phaseswithhierarchy", f.lastPath)
	assert.Equal(t, []models.Phase{{
		SeveraPhaseGuid:   "ph-1",
		Name:              "Build",
		WorkHoursEstimate: 120,
		StartDate:         "2024-01-01",
		DeadLine:          "2024-06-30",
		Project:           models.SeveraProject{SeveraProjectGuid: "p-1", Name: "Portal"},
	}}, phases)
}

func Test_GetPhasesByProject_MissingProject(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{"guid":"ph-1","project":{"guid":"p-1"}},{"guid":"ph-2","name":"Orphan"}]`

	//Act
	_, err := f.repository().GetPhasesByProject(context.Background(), "p-1")

	//Assert
	var malformed *MalformedResponse
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, "project", malformed.Field)
}

func Test_GetPhasesByProject_UpstreamFailure(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.status = http.StatusServiceUnavailable

	//Act
	_, err := f.repository().GetPhasesByProject(context.Background(), "p-1")

	//Assert
	var upstream *UpstreamFailure
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, "Service Unavailable", upstream.StatusText)
	assert.Equal(t, "failed to fetch phases: 503 - Service Unavailable", upstream.Error())
}

func Test_GetWorkHours_HappyPath(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{
		"guid":"w1",
		"user":{"guid":"u-1","name":"A"},
		"project":{"guid":"p-1","name":"P","isClosed":false},
		"phase":{"guid":"ph-1","name":"Build"},
		"description":"d","eventDate":"2024-01-01","quantity":8,
		"startTime":"09:00","endTime":"17:00"
	}]`

	//Act
	workHours, err := f.repository().GetWorkHours(context.Background(), WorkHoursSelector{SeveraUserGuid: "u-1"})

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "/v1/users/u-1/workhours", f.lastPath)
	out, err := json.Marshal(workHours)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"severaWorkHoursGuid":"w1",
		"user":{"severaUserGuid":"u-1","name":"A"},
		"project":{"severaProjectGuid":"p-1","name":"P","isClosed":false},
		"description":"d","eventDate":"2024-01-01","quantity":8,
		"startTime":"09:00","endTime":"17:00"
	}]`, string(out))
}

func Test_GetWorkHours_EndpointSelection(t *testing.T) {
	tests := []struct {
		name     string
		selector WorkHoursSelector
		wantPath string
	}{
		{"user only", WorkHoursSelector{SeveraUserGuid: "u-1"}, "/v1/users/u-1/workhours"},
		{"project only", WorkHoursSelector{SeveraProjectGuid: "p-1"}, "/v1/projects/p-1/workhours"},
		{"user wins over project", WorkHoursSelector{SeveraUserGuid: "u-1", SeveraProjectGuid: "p-1"}, "/v1/users/u-1/workhours"},
		{"unfiltered", WorkHoursSelector{}, "/v1/workhours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeSevera(t)

			_, err := f.repository().GetWorkHours(context.Background(), tt.selector)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, f.lastPath)
		})
	}
}

func Test_GetWorkHours_MissingUser(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	f.body = `[{"guid":"w1","project":{"guid":"p-1"}}]`

	//Act
	_, err := f.repository().GetWorkHours(context.Background(), WorkHoursSelector{})

	//Assert
	var malformed *MalformedResponse
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "user", malformed.Field)
}

func Test_EveryOperationExchangesToken(t *testing.T) {
	//Arrange
	f := newFakeSevera(t)
	dao := f.repository()

	//Act
	_, _ = dao.GetWorkHours(context.Background(), WorkHoursSelector{})
	_, _ = dao.GetWorkHours(context.Background(), WorkHoursSelector{})

	//Assert
	assert.Equal(t, int32(2), atomic.LoadInt32(&f.tokenCalls))
}
