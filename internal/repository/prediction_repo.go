package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"riskscreen/internal/models"
)

type PredictionSQLite struct {
	db *sql.DB
}

func NewPredictionSQLite(db *sql.DB) *PredictionSQLite {
	return &PredictionSQLite{db: db}
}

var _ Predictions = (*PredictionSQLite)(nil)

const (
	insertPredictionSQL = `
		INSERT INTO predictions (user_id, fever, tired, cough, breath, throat, age, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// id breaks ties between rows created within the same second.
	selectPredictionsByUserSQL = `
		SELECT id, user_id, fever, tired, cough, breath, throat, age, result, created_at
		FROM predictions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
)

// sqliteTimestampFormat matches SQLite's TIMESTAMP text representation.
const sqliteTimestampFormat = "2006-01-02 15:04:05"

// Append inserts an immutable prediction row and returns its ID.
// If CreatedAt is zero it is set to the current UTC time.
func (r *PredictionSQLite) Append(ctx context.Context, p models.Prediction) (int, error) {
	ts := p.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertPredictionSQL,
		p.UserID,
		p.Fever,
		p.Tired,
		p.Cough,
		p.Breath,
		p.Throat,
		p.Age,
		p.Result,
		ts.Format(sqliteTimestampFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("insert prediction for user %d: %w", p.UserID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for prediction: %w", err)
	}
	return int(lastID), nil
}

// ListByUser returns the user's predictions, most recent first.
func (r *PredictionSQLite) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, selectPredictionsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select predictions for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Prediction, 0, 16)
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Fever,
			&p.Tired,
			&p.Cough,
			&p.Breath,
			&p.Throat,
			&p.Age,
			&p.Result,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prediction row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prediction rows: %w", err)
	}
	return out, nil
}
