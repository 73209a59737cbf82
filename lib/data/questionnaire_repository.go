package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"timebank/lib/models"

	"github.com/sirupsen/logrus"
)

// QuestionnaireRepository defines the interface for questionnaire data operations
type QuestionnaireRepository interface {
	ListQuestionnaires(ctx context.Context) ([]models.Questionnaire, error)
	GetQuestionnaireByID(ctx context.Context, id string) (*models.Questionnaire, error)
	CreateQuestionnaire(ctx context.Context, questionnaire *models.Questionnaire) (*models.Questionnaire, error)
	DeleteQuestionnaire(ctx context.Context, id string) error
}

// QuestionnaireDao implements QuestionnaireRepository using PostgreSQL. Options live in a JSONB column.
type QuestionnaireDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewQuestionnaireRepository creates a new QuestionnaireRepository instance
func NewQuestionnaireRepository(db *sql.DB, logger *logrus.Logger) QuestionnaireRepository {
	return &QuestionnaireDao{
		DB:     db,
		Logger: logger,
	}
}

func scanQuestionnaire(row interface{ Scan(...interface{}) error }) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	var options []byte
	if err := row.Scan(&questionnaire.ID, &questionnaire.Title, &questionnaire.Description, &options, &questionnaire.PassScore); err != nil {
		return nil, err
	}
	questionnaire.Options = []models.QuestionnaireOption{}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &questionnaire.Options); err != nil {
			return nil, fmt.Errorf("failed to decode questionnaire options: %w", err)
		}
	}
	return &questionnaire, nil
}

// ListQuestionnaires retrieves all questionnaires ordered by title
func (dao *QuestionnaireDao) ListQuestionnaires(ctx context.Context) ([]models.Questionnaire, error) {
	rows, err := dao.DB.QueryContext(ctx, `
		SELECT id, title, description, options, pass_score
		FROM timebank.questionnaires
		ORDER BY title ASC
	`)
	if err != nil {
		dao.Logger.WithError(err).Error("Failed to query questionnaires")
		return nil, fmt.Errorf("failed to query questionnaires: %w", err)
	}
	defer rows.Close()

	questionnaires := []models.Questionnaire{}
	for rows.Next() {
		questionnaire, err := scanQuestionnaire(rows)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan questionnaire row")
			return nil, fmt.Errorf("failed to scan questionnaire: %w", err)
		}
		questionnaires = append(questionnaires, *questionnaire)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questionnaires: %w", err)
	}
	return questionnaires, nil
}

// GetQuestionnaireByID retrieves a questionnaire by id
func (dao *QuestionnaireDao) GetQuestionnaireByID(ctx context.Context, id string) (*models.Questionnaire, error) {
	row := dao.DB.QueryRowContext(ctx, `
		SELECT id, title, description, options, pass_score
		FROM timebank.questionnaires
		WHERE id = $1
	`, id)

	questionnaire, err := scanQuestionnaire(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"questionnaire_id": id,
			"error":            err.Error(),
		}).Error("Failed to get questionnaire")
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}
	return questionnaire, nil
}

// CreateQuestionnaire inserts a questionnaire; ID must be set
func (dao *QuestionnaireDao) CreateQuestionnaire(ctx context.Context, questionnaire *models.Questionnaire) (*models.Questionnaire, error) {
	options, err := json.Marshal(questionnaire.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questionnaire options: %w", err)
	}

	_, err = dao.DB.ExecContext(ctx, `
		INSERT INTO timebank.questionnaires (id, title, description, options, pass_score)
		VALUES ($1, $2, $3, $4, $5)
	`, questionnaire.ID, questionnaire.Title, questionnaire.Description, string(options), questionnaire.PassScore)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"questionnaire_id": questionnaire.ID,
			"error":            err.Error(),
		}).Error("Failed to create questionnaire")
		return nil, fmt.Errorf("failed to create questionnaire: %w", err)
	}
	return questionnaire, nil
}

// DeleteQuestionnaire removes a questionnaire
func (dao *QuestionnaireDao) DeleteQuestionnaire(ctx context.Context, id string) error {
	result, err := dao.DB.ExecContext(ctx, `DELETE FROM timebank.questionnaires WHERE id = $1`, id)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"questionnaire_id": id,
			"error":            err.Error(),
		}).Error("Failed to delete questionnaire")
		return fmt.Errorf("failed to delete questionnaire: %w", err)
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
