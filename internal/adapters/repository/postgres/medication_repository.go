package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type MedicationRepository struct {
	db *sql.DB
}

func NewMedicationRepository(db *sql.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) Save(ctx context.Context, m *domain.Medication) error {
	query := `
		INSERT INTO medications (id, user_id, medication_name, dose, timing, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.MedicationName, m.Dose, m.Timing, m.CreatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return storageErr("insert medication", err)
	}
	return nil
}

func (r *MedicationRepository) Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error) {
	query := `
		SELECT id, user_id, medication_name, dose, timing, created_at
		FROM medications
		WHERE id = $1 AND user_id = $2
	`
	m := &domain.Medication{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&m.ID, &m.UserID, &m.MedicationName, &m.Dose, &m.Timing, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMedicationNotFound
		}
		return nil, storageErr("get medication", err)
	}
	return m, nil
}

func (r *MedicationRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	query := `
		SELECT id, user_id, medication_name, dose, timing, created_at
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storageErr("list medications", err)
	}
	defer rows.Close()

	meds := []*domain.Medication{}
	for rows.Next() {
		m := &domain.Medication{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.MedicationName, &m.Dose, &m.Timing, &m.CreatedAt); err != nil {
			return nil, storageErr("scan medication", err)
		}
		meds = append(meds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list medications", err)
	}
	return meds, nil
}

func (r *MedicationRepository) Update(ctx context.Context, m *domain.Medication) error {
	query := `
		UPDATE medications SET medication_name = $3, dose = $4, timing = $5
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.MedicationName, m.Dose, m.Timing)
	if err != nil {
		return storageErr("update medication", err)
	}
	return expectRow(res, domain.ErrMedicationNotFound)
}

func (r *MedicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return storageErr("delete medication", err)
	}
	return expectRow(res, domain.ErrMedicationNotFound)
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("count affected rows", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
