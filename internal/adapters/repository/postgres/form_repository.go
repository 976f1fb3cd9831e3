package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type FormRepository struct {
	db *sql.DB
}

func NewFormRepository(db *sql.DB) *FormRepository {
	return &FormRepository{db: db}
}

const formColumns = `id, user_id, created_by, title, description, questions, created_at`

func (r *FormRepository) Save(ctx context.Context, form *domain.Form) error {
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO forms (id, user_id, created_by, title, description, questions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, query, form.ID, form.UserID, form.CreatedBy, form.Title, form.Description, questions, form.CreatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return storageErr("insert form", err)
	}

	if len(form.Events) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO form_events (form_id, kind, payload, occurred_at) VALUES ($1, $2, $3, $4)`)
		if err != nil {
			return storageErr("prepare event statement", err)
		}
		defer stmt.Close()

		for _, e := range form.Events {
			payload, err := json.Marshal(domain.NewEventRecord(e))
			if err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, form.ID, e.Kind(), payload, e.OccurredAt()); err != nil {
				return storageErr("insert event", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

func (r *FormRepository) FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE id = $1 AND user_id = $2`
	return r.getOne(ctx, r.db.QueryRowContext(ctx, query, formID, userID))
}

func (r *FormRepository) GetByID(ctx context.Context, formID uuid.UUID) (*domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE id = $1`
	return r.getOne(ctx, r.db.QueryRowContext(ctx, query, formID))
}

func (r *FormRepository) FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storageErr("list forms", err)
	}
	defer rows.Close()

	forms := []*domain.Form{}
	byID := make(map[uuid.UUID]*domain.Form)
	ids := []string{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
		byID[form.ID] = form
		ids = append(ids, form.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list forms", err)
	}
	if len(forms) == 0 {
		return forms, nil
	}

	eventRows, err := r.db.QueryContext(ctx,
		`SELECT form_id, payload FROM form_events WHERE form_id = ANY($1::uuid[]) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, storageErr("list form events", err)
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var formID uuid.UUID
		var payload []byte
		if err := eventRows.Scan(&formID, &payload); err != nil {
			return nil, storageErr("scan form event", err)
		}
		event, err := decodeEvent(payload)
		if err != nil {
			return nil, err
		}
		if form, ok := byID[formID]; ok {
			form.Events = append(form.Events, event)
		}
	}
	if err := eventRows.Err(); err != nil {
		return nil, storageErr("list form events", err)
	}
	return forms, nil
}

// AppendEvent inserts the event only if the form exists and belongs to ownerID,
// so ownership and the write are checked in one statement.
func (r *FormRepository) AppendEvent(ctx context.Context, formID, ownerID uuid.UUID, event domain.Event) error {
	payload, err := json.Marshal(domain.NewEventRecord(event))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	query := `
		INSERT INTO form_events (form_id, kind, payload, occurred_at)
		SELECT id, $3::text, $4::jsonb, $5::timestamptz FROM forms WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, formID, ownerID, event.Kind(), payload, event.OccurredAt())
	if err != nil {
		return storageErr("append form event", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("append form event", err)
	}
	if n == 0 {
		return domain.ErrFormNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForm(row scanner) (*domain.Form, error) {
	form := &domain.Form{Events: domain.Events{}}
	var questions []byte
	err := row.Scan(&form.ID, &form.UserID, &form.CreatedBy, &form.Title, &form.Description, &questions, &form.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFormNotFound
		}
		return nil, storageErr("scan form", err)
	}
	if err := json.Unmarshal(questions, &form.Questions); err != nil {
		return nil, storageErr("decode questions", err)
	}
	return form, nil
}

func (r *FormRepository) getOne(ctx context.Context, row *sql.Row) (*domain.Form, error) {
	form, err := scanForm(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM form_events WHERE form_id = $1 ORDER BY id`, form.ID)
	if err != nil {
		return nil, storageErr("list form events", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, storageErr("scan form event", err)
		}
		event, err := decodeEvent(payload)
		if err != nil {
			return nil, err
		}
		form.Events = append(form.Events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list form events", err)
	}
	return form, nil
}

func decodeEvent(payload []byte) (domain.Event, error) {
	var record domain.EventRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, storageErr("decode form event", err)
	}
	event, err := record.Event()
	if err != nil {
		return nil, storageErr("decode form event", err)
	}
	return event, nil
}
