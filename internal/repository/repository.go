package repository

import (
	"context"
	"database/sql"
	"strings"

	"riskscreen/internal/models"
	"riskscreen/internal/repository/db"
)

type Users interface {
	Create(ctx context.Context, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Predictions interface {
	Append(ctx context.Context, p models.Prediction) (int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Prediction, error)
}

type Repository struct {
	Users       Users
	Predictions Predictions
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:       NewUserSQLite(sqlDB),
		Predictions: NewPredictionSQLite(sqlDB),
	}
}

// InitDB opens the SQLite store and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

// IsUniqueViolation reports whether err stems from a UNIQUE constraint.
// The driver exposes no stable error type for this, so match the message.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
