package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type RelationshipRepository struct {
	db *sql.DB
}

func NewRelationshipRepository(db *sql.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) AddCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	query := `
		INSERT INTO user_caregivers (patient_id, caregiver_id)
		VALUES ($1, $2)
		ON CONFLICT (patient_id, caregiver_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, patientID, caregiverID)
	if err != nil {
		switch pqCode(err) {
		case foreignKeyViolation:
			return domain.ErrUserNotFound
		case checkViolation:
			return domain.ErrSelfCaregiver
		}
		return storageErr("add caregiver", err)
	}
	return nil
}

func (r *RelationshipRepository) RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	query := `DELETE FROM user_caregivers WHERE patient_id = $1 AND caregiver_id = $2`
	if _, err := r.db.ExecContext(ctx, query, patientID, caregiverID); err != nil {
		return storageErr("remove caregiver", err)
	}
	return nil
}

func (r *RelationshipRepository) ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email
		FROM user_caregivers uc
		JOIN users u ON u.id = uc.caregiver_id
		WHERE uc.patient_id = $1 AND u.deleted_at IS NULL
		ORDER BY uc.created_at, u.id
	`
	return r.queryInfos(ctx, "list caregivers", query, patientID)
}

func (r *RelationshipRepository) ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email
		FROM user_caregivers uc
		JOIN users u ON u.id = uc.patient_id
		WHERE uc.caregiver_id = $1 AND u.deleted_at IS NULL
		ORDER BY uc.created_at, u.id
	`
	return r.queryInfos(ctx, "list patients", query, caregiverID)
}

func (r *RelationshipRepository) IsCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_caregivers WHERE patient_id = $1 AND caregiver_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, patientID, caregiverID).Scan(&exists); err != nil {
		return false, storageErr("check caregiver", err)
	}
	return exists, nil
}

func (r *RelationshipRepository) queryInfos(ctx context.Context, action, query string, id uuid.UUID) ([]domain.CaregiverInfo, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, storageErr(action, err)
	}
	defer rows.Close()

	infos := []domain.CaregiverInfo{}
	for rows.Next() {
		var info domain.CaregiverInfo
		if err := rows.Scan(&info.ID, &info.FirstName, &info.LastName, &info.Email); err != nil {
			return nil, storageErr(action, err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(action, err)
	}
	return infos, nil
}
