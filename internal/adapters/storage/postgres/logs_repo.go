package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-log/internal/domain/logs"
)

type LogsRepo struct {
	db *sql.DB
}

func NewLogsRepo(db *sql.DB) *LogsRepo {
	return &LogsRepo{db: db}
}

func (r *LogsRepo) Create(ctx context.Context, l logs.Log) (logs.Log, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO care_logs (pet_name, task, event_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, pet_name, task, event_time, created_at, updated_at
	`,
		l.PetName,
		l.Task,
		l.Time,
		l.CreatedAt,
		l.UpdatedAt,
	)

	return scanLog(row)
}

func (r *LogsRepo) GetByID(ctx context.Context, id int64) (logs.Log, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_name, task, event_time, created_at, updated_at
		FROM care_logs
		WHERE id = $1
	`, id)

	return scanLog(row)
}

func (r *LogsRepo) List(ctx context.Context) ([]logs.Log, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_name, task, event_time, created_at, updated_at
		FROM care_logs
		ORDER BY event_time DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.Log, 0)
	for rows.Next() {
		var l logs.Log
		if err := rows.Scan(&l.ID, &l.PetName, &l.Task, &l.Time, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

func (r *LogsRepo) Update(ctx context.Context, l logs.Log) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_logs
		SET pet_name = $1, task = $2, event_time = $3, updated_at = $4
		WHERE id = $5
	`,
		l.PetName,
		l.Task,
		l.Time,
		l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return logs.ErrNotFound
	}
	return nil
}

func (r *LogsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM care_logs
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return logs.ErrNotFound
	}
	return nil
}

func scanLog(row *sql.Row) (logs.Log, error) {
	var l logs.Log
	if err := row.Scan(&l.ID, &l.PetName, &l.Task, &l.Time, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return logs.Log{}, logs.ErrNotFound
		}
		return logs.Log{}, err
	}
	return l, nil
}
