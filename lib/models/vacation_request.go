package models

import (
	"time"

	"timebank/lib/constants"
)

// Vacation request types
const (
	VacationTypeVacation           = "VACATION"
	VacationTypeUnpaidTimeOff      = "UNPAID_TIME_OFF"
	VacationTypeSickness           = "SICKNESS"
	VacationTypePersonalDays       = "PERSONAL_DAYS"
	VacationTypeMaternityPaternity = "MATERNITY_PATERNITY"
	VacationTypeChildSickness      = "CHILD_SICKNESS"
)

// Vacation request statuses
const (
	VacationStatusPending  = "PENDING"
	VacationStatusApproved = "APPROVED"
	VacationStatusDeclined = "DECLINED"
)

var vacationTypes = map[string]bool{
	VacationTypeVacation:           true,
	VacationTypeUnpaidTimeOff:      true,
	VacationTypeSickness:           true,
	VacationTypePersonalDays:       true,
	VacationTypeMaternityPaternity: true,
	VacationTypeChildSickness:      true,
}

var vacationStatuses = map[string]bool{
	VacationStatusPending:  true,
	VacationStatusApproved: true,
	VacationStatusDeclined: true,
}

// VacationRequest represents a row of timebank.vacation_requests
type VacationRequest struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"personId"`
	Draft     bool      `json:"draft"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Days      int       `json:"days"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateVacationRequestRequest is the payload of POST /vacationRequests
type CreateVacationRequestRequest struct {
	PersonID  string `json:"personId"`
	Draft     bool   `json:"draft"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
	Type      string `json:"type"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message"`
}

// UpdateVacationRequestRequest is the payload of PUT /vacationRequests/{id}
type UpdateVacationRequestRequest struct {
	Draft     *bool  `json:"draft,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Validate returns the list of problems with the create payload
func (r *CreateVacationRequestRequest) Validate() []string {
	var errs []string
	if r.PersonID == "" {
		errs = append(errs, "personId: is required")
	}
	errs = append(errs, validateVacationFields(r.StartDate, r.EndDate, r.Days, r.Type, r.Message)...)
	if r.Status != "" && !vacationStatuses[r.Status] {
		errs = append(errs, "status: is not a valid vacation request status")
	}
	return errs
}

// Validate returns the list of problems with the update payload
func (r *UpdateVacationRequestRequest) Validate() []string {
	errs := validateVacationFields(r.StartDate, r.EndDate, r.Days, r.Type, r.Message)
	if r.Status == "" {
		errs = append(errs, "status: is required")
	} else if !vacationStatuses[r.Status] {
		errs = append(errs, "status: is not a valid vacation request status")
	}
	return errs
}

func validateVacationFields(startDate, endDate string, days int, vacationType, message string) []string {
	var errs []string
	start, startErr := time.Parse(constants.DATE_LAYOUT, startDate)
	if startDate == "" {
		errs = append(errs, "startDate: is required")
	} else if startErr != nil {
		errs = append(errs, "startDate: must be a date in YYYY-MM-DD format")
	}
	end, endErr := time.Parse(constants.DATE_LAYOUT, endDate)
	if endDate == "" {
		errs = append(errs, "endDate: is required")
	} else if endErr != nil {
		errs = append(errs, "endDate: must be a date in YYYY-MM-DD format")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, "endDate: must not be before startDate")
	}
	if days <= 0 {
		errs = append(errs, "days: must be greater than zero")
	}
	if vacationType == "" {
		errs = append(errs, "type: is required")
	} else if !vacationTypes[vacationType] {
		errs = append(errs, "type: is not a valid vacation request type")
	}
	if message == "" {
		errs = append(errs, "message: is required")
	}
	return errs
}
