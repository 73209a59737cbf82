package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"timebank/lib/models"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by the PostgreSQL repositories when no row matches
var ErrNotFound = errors.New("record not found")

// VacationRequestRepository defines the interface for vacation request data operations
type VacationRequestRepository interface {
	CreateVacationRequest(ctx context.Context, request *models.VacationRequest) (*models.VacationRequest, error)
	GetVacationRequestByID(ctx context.Context, id string) (*models.VacationRequest, error)
	// ListVacationRequests lists every request, or only the ones of personID when it is not empty
	ListVacationRequests(ctx context.Context, personID string) ([]models.VacationRequest, error)
	UpdateVacationRequest(ctx context.Context, request *models.VacationRequest) (*models.VacationRequest, error)
	DeleteVacationRequest(ctx context.Context, id string) error
}

// VacationRequestDao implements VacationRequestRepository using PostgreSQL
type VacationRequestDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewVacationRequestRepository creates a new VacationRequestRepository instance
func NewVacationRequestRepository(db *sql.DB, logger *logrus.Logger) VacationRequestRepository {
	return &VacationRequestDao{
		DB:     db,
		Logger: logger,
	}
}

const vacationRequestColumns = `
	id, person_id, draft, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
	days, type, status, message, created_by, created_at, updated_by, updated_at`

func scanVacationRequest(row interface{ Scan(...interface{}) error }) (*models.VacationRequest, error) {
	var request models.VacationRequest
	err := row.Scan(
		&request.ID,
		&request.PersonID,
		&request.Draft,
		&request.StartDate,
		&request.EndDate,
		&request.Days,
		&request.Type,
		&request.Status,
		&request.Message,
		&request.CreatedBy,
		&request.CreatedAt,
		&request.UpdatedBy,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateVacationRequest inserts a new vacation request. ID, CreatedBy and UpdatedBy must be set.
func (dao *VacationRequestDao) CreateVacationRequest(ctx context.Context, request *models.VacationRequest) (*models.VacationRequest, error) {
	err := dao.DB.QueryRowContext(ctx, `
		INSERT INTO timebank.vacation_requests (
			id, person_id, draft, start_date, end_date, days, type, status, message,
			created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, request.ID, request.PersonID, request.Draft, request.StartDate, request.EndDate, request.Days,
		request.Type, request.Status, request.Message, request.CreatedBy, request.UpdatedBy).Scan(
		&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"vacation_request_id": request.ID,
			"person_id":           request.PersonID,
			"error":               err.Error(),
		}).Error("Failed to create vacation request")
		return nil, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return request, nil
}

// GetVacationRequestByID retrieves a vacation request by id
func (dao *VacationRequestDao) GetVacationRequestByID(ctx context.Context, id string) (*models.VacationRequest, error) {
	row := dao.DB.QueryRowContext(ctx, `
		SELECT `+vacationRequestColumns+`
		FROM timebank.vacation_requests
		WHERE id = $1
	`, id)

	request, err := scanVacationRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"vacation_request_id": id,
			"error":               err.Error(),
		}).Error("Failed to get vacation request")
		return nil, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return request, nil
}

// ListVacationRequests lists vacation requests ordered by start date
func (dao *VacationRequestDao) ListVacationRequests(ctx context.Context, personID string) ([]models.VacationRequest, error) {
	query := `SELECT ` + vacationRequestColumns + ` FROM timebank.vacation_requests`
	var args []interface{}
	if personID != "" {
		query += ` WHERE person_id = $1`
		args = append(args, personID)
	}
	query += ` ORDER BY start_date ASC, created_at ASC`

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"person_id": personID,
			"error":     err.Error(),
		}).Error("Failed to query vacation requests")
		return nil, fmt.Errorf("failed to query vacation requests: %w", err)
	}
	defer rows.Close()

	requests := []models.VacationRequest{}
	for rows.Next() {
		request, err := scanVacationRequest(rows)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan vacation request row")
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err = rows.Err(); err != nil {
		dao.Logger.WithError(err).Error("Error iterating vacation request rows")
		return nil, fmt.Errorf("error iterating vacation requests: %w", err)
	}
	return requests, nil
}

// UpdateVacationRequest overwrites the mutable fields of a vacation request
func (dao *VacationRequestDao) UpdateVacationRequest(ctx context.Context, request *models.VacationRequest) (*models.VacationRequest, error) {
	err := dao.DB.QueryRowContext(ctx, `
		UPDATE timebank.vacation_requests
		SET draft = $2, start_date = $3, end_date = $4, days = $5, type = $6, status = $7,
		    message = $8, updated_by = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, request.ID, request.Draft, request.StartDate, request.EndDate, request.Days, request.Type,
		request.Status, request.Message, request.UpdatedBy).Scan(&request.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"vacation_request_id": request.ID,
			"error":               err.Error(),
		}).Error("Failed to update vacation request")
		return nil, fmt.Errorf("failed to update vacation request: %w", err)
	}
	return request, nil
}

// DeleteVacationRequest removes a vacation request
func (dao *VacationRequestDao) DeleteVacationRequest(ctx context.Context, id string) error {
	result, err := dao.DB.ExecContext(ctx, `DELETE FROM timebank.vacation_requests WHERE id = $1`, id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"vacation_request_id": id,
			"error":               err.Error(),
		}).Error("Failed to delete vacation request")
		return fmt.Errorf("failed to delete vacation request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
