package models

// SeveraTokenRequest is the credential exchange body sent to /v1/token
type SeveraTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
}

// SeveraTokenResponse is the credential exchange response
type SeveraTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// SeveraNamedObject is the generic {guid, name} reference used throughout the Severa API
type SeveraNamedObject struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// SeveraProjectReference is a project reference as embedded in Severa payloads
type SeveraProjectReference struct {
	GUID       string `json:"guid"`
	Name       string `json:"name"`
	IsClosed   bool   `json:"isClosed"`
	IsInternal bool   `json:"isInternal"`
}

// SeveraResourceAllocationItem is one item of /users/{id}/resourceallocations/allocations
type SeveraResourceAllocationItem struct {
	GUID                      string                  `json:"guid"`
	AllocationHours           float64                 `json:"allocationHours"`
	CalculatedAllocationHours float64                 `json:"calculatedAllocationHours"`
	Phase                     *SeveraNamedObject      `json:"phase"`
	User                      *SeveraNamedObject      `json:"user"`
	Project                   *SeveraProjectReference `json:"project"`
}

// SeveraPhaseItem is one item of /projects/{id}/phaseswithhierarchy
type SeveraPhaseItem struct {
	GUID              string                  `json:"guid"`
	Name              string                  `json:"name"`
	IsCompleted       bool                    `json:"isCompleted"`
	WorkHoursEstimate float64                 `json:"workHoursEstimate"`
	StartDate         string                  `json:"startDate"`
	DeadLine          string                  `json:"deadLine"`
	Project           *SeveraProjectReference `json:"project"`
}

// SeveraWorkHoursItem is one item of the workhours endpoints
type SeveraWorkHoursItem struct {
	GUID        string                  `json:"guid"`
	User        *SeveraNamedObject      `json:"user"`
	Project     *SeveraProjectReference `json:"project"`
	Phase       *SeveraNamedObject      `json:"phase"`
	Description string                  `json:"description"`
	EventDate   string                  `json:"eventDate"`
	Quantity    float64                 `json:"quantity"`
	StartTime   string                  `json:"startTime"`
	EndTime     string                  `json:"endTime"`
}

// ResourceAllocationPhase is the flattened phase of a resource allocation.
// Fields are omitted when Severa did not send a phase.
type ResourceAllocationPhase struct {
	SeveraPhaseGuid *string `json:"severaPhaseGuid,omitempty"`
	Name            *string `json:"name,omitempty"`
}

// ResourceAllocationUser is the flattened user of a resource allocation
type ResourceAllocationUser struct {
	SeveraUserGuid *string `json:"severaUserGuid,omitempty"`
	Name           *string `json:"name,omitempty"`
}

// ResourceAllocationProject is the flattened project of a resource allocation
type ResourceAllocationProject struct {
	SeveraProjectGuid *string `json:"severaProjectGuid,omitempty"`
	Name              *string `json:"name,omitempty"`
	IsInternal        *bool   `json:"isInternal,omitempty"`
}

// ResourceAllocation is the local shape of a Severa resource allocation.
// SeveraProjectGuid carries the allocation's own guid; consumers rely on this name.
type ResourceAllocation struct {
	SeveraProjectGuid         string                    `json:"severaProjectGuid"`
	AllocationHours           float64                   `json:"allocationHours"`
	CalculatedAllocationHours float64                   `json:"calculatedAllocationHours"`
	Phase                     ResourceAllocationPhase   `json:"phase"`
	Users                     ResourceAllocationUser    `json:"users"`
	Projects                  ResourceAllocationProject `json:"projects"`
}

// SeveraProject is the flattened project embedded in phases and work hours
type SeveraProject struct {
	SeveraProjectGuid string `json:"severaProjectGuid"`
	Name              string `json:"name"`
	IsClosed          bool   `json:"isClosed"`
}

// SeveraUser is the flattened user embedded in work hours
type SeveraUser struct {
	SeveraUserGuid string `json:"severaUserGuid"`
	Name           string `json:"name"`
}

// Phase is the local shape of a Severa project phase
type Phase struct {
	SeveraPhaseGuid   string        `json:"severaPhaseGuid"`
	Name              string        `json:"name"`
	IsCompleted       bool          `json:"isCompleted"`
	WorkHoursEstimate float64       `json:"workHoursEstimate"`
	StartDate         string        `json:"startDate"`
	DeadLine          string        `json:"deadLine"`
	Project           SeveraProject `json:"project"`
}

// WorkHours is the local shape of a Severa work hours entry. The phase is not exposed.
type WorkHours struct {
	SeveraWorkHoursGuid string        `json:"severaWorkHoursGuid"`
	User                SeveraUser    `json:"user"`
	Project             SeveraProject `json:"project"`
	Description         string        `json:"description"`
	EventDate           string        `json:"eventDate"`
	Quantity            float64       `json:"quantity"`
	StartTime           string        `json:"startTime"`
	EndTime             string        `json:"endTime"`
}
