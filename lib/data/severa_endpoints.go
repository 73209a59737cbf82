package data

import (
	"net/url"
)

// WorkHoursEndpoint enumerates the Severa work hours endpoints
type WorkHoursEndpoint int

const (
	// WorkHoursEndpointAll is the unfiltered /v1/workhours
	WorkHoursEndpointAll WorkHoursEndpoint = iota
	// WorkHoursEndpointUser is /v1/users/{id}/workhours
	WorkHoursEndpointUser
	// WorkHoursEndpointProject is /v1/projects/{id}/workhours
	WorkHoursEndpointProject
)

func (e WorkHoursEndpoint) String() string {
	switch e {
	case WorkHoursEndpointUser:
		return "user"
	case WorkHoursEndpointProject:
		return "project"
	default:
		return "all"
	}
}

// WorkHoursSelector scopes a work hours query. Both fields are optional.
type WorkHoursSelector struct {
	SeveraUserGuid    string
	SeveraProjectGuid string
}

// SelectWorkHoursEndpoint picks the endpoint for a selector.
//
// Precedence:
//
//	user guid set                  -> WorkHoursEndpointUser (project guid is ignored)
//	project guid set, user empty   -> WorkHoursEndpointProject
//	neither                        -> WorkHoursEndpointAll
//
// Severa has no endpoint filtering by user and project at once, so a selector carrying both
// is answered with the user's work hours.
func SelectWorkHoursEndpoint(selector WorkHoursSelector) WorkHoursEndpoint {
	switch {
	case selector.SeveraUserGuid != "":
		return WorkHoursEndpointUser
	case selector.SeveraProjectGuid != "":
		return WorkHoursEndpointProject
	default:
		return WorkHoursEndpointAll
	}
}

// WorkHoursPath returns the API path (relative to the base URL) for a selector
func WorkHoursPath(selector WorkHoursSelector) string {
	switch SelectWorkHoursEndpoint(selector) {
	case WorkHoursEndpointUser:
		return "/v1/users/" + url.PathEscape(selector.SeveraUserGuid) + "/workhours"
	case WorkHoursEndpointProject:
		return "/v1/projects/" + url.PathEscape(selector.SeveraProjectGuid) + "/workhours"
	default:
		return "/v1/workhours"
	}
}

func flextimePath(severaUserGuid, eventDate string) string {
	q := url.Values{}
	q.Set("eventdate", eventDate)
	return "/v1/users/" + url.PathEscape(severaUserGuid) + "/flextime?" + q.Encode()
}

func resourceAllocationPath(severaUserGuid string) string {
	return "/v1/users/" + url.PathEscape(severaUserGuid) + "/resourceallocations/allocations"
}

func phasesPath(severaProjectGuid string) string {
	return "/v1/projects/" + url.PathEscape(severaProjectGuid) + "/phaseswithhierarchy"
}
