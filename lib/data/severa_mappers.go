package data

import (
	"timebank/lib/models"
)

// MapResourceAllocations flattens Severa resource allocations. Absent phase, user or
// project objects leave the corresponding fields unset instead of failing.
func MapResourceAllocations(items []models.SeveraResourceAllocationItem) []models.ResourceAllocation {
	allocations := make([]models.ResourceAllocation, 0, len(items))
	for _, item := range items {
		allocation := models.ResourceAllocation{
			SeveraProjectGuid:         item.GUID,
			AllocationHours:           item.AllocationHours,
			CalculatedAllocationHours: item.CalculatedAllocationHours,
		}
		if item.Phase != nil {
			allocation.Phase = models.ResourceAllocationPhase{
				SeveraPhaseGuid: stringPtr(item.Phase.GUID),
				Name:            stringPtr(item.Phase.Name),
			}
		}
		if item.User != nil {
			allocation.Users = models.ResourceAllocationUser{
				SeveraUserGuid: stringPtr(item.User.GUID),
				Name:           stringPtr(item.User.Name),
			}
		}
		if item.Project != nil {
			allocation.Projects = models.ResourceAllocationProject{
				SeveraProjectGuid: stringPtr(item.Project.GUID),
				Name:              stringPtr(item.Project.Name),
				IsInternal:        boolPtr(item.Project.IsInternal),
			}
		}
		allocations = append(allocations, allocation)
	}
	return allocations
}

// MapPhases flattens Severa phases. Every phase must carry its project.
func MapPhases(items []models.SeveraPhaseItem) ([]models.Phase, error) {
	phases := make([]models.Phase, 0, len(items))
	for i, item := range items {
		if item.Project == nil {
			return nil, &MalformedResponse{Resource: "phases", Index: i, Field: "project"}
		}
		phases = append(phases, models.Phase{
			SeveraPhaseGuid:   item.GUID,
			Name:              item.Name,
			IsCompleted:       item.IsCompleted,
			WorkHoursEstimate: item.WorkHoursEstimate,
			StartDate:         item.StartDate,
			DeadLine:          item.DeadLine,
			Project:           mapProject(item.Project),
		})
	}
	return phases, nil
}

// MapWorkHours flattens Severa work hours. Every entry must carry its user and project;
// the phase is dropped.
func MapWorkHours(items []models.SeveraWorkHoursItem) ([]models.WorkHours, error) {
	workHours := make([]models.WorkHours, 0, len(items))
	for i, item := range items {
		if item.User == nil {
			return nil, &MalformedResponse{Resource: "work hours", Index: i, Field: "user"}
		}
		if item.Project == nil {
			return nil, &MalformedResponse{Resource: "work hours", Index: i, Field: "project"}
		}
		workHours = append(workHours, models.WorkHours{
			SeveraWorkHoursGuid: item.GUID,
			User: models.SeveraUser{
				SeveraUserGuid: item.User.GUID,
				Name:           item.User.Name,
			},
			Project:     mapProject(item.Project),
			Description: item.Description,
			EventDate:   item.EventDate,
			Quantity:    item.Quantity,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
		})
	}
	return workHours, nil
}

func mapProject(project *models.SeveraProjectReference) models.SeveraProject {
	return models.SeveraProject{
		SeveraProjectGuid: project.GUID,
		Name:              project.Name,
		IsClosed:          project.IsClosed,
	}
}

func stringPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
