package service

import (
	"context"

	"riskscreen/internal/models"
	"riskscreen/internal/repository"
)

// HistoryService reads back per-user prediction history for the dashboard.
type HistoryService struct {
	predictions repository.Predictions
}

func NewHistoryService(predictions repository.Predictions) *HistoryService {
	return &HistoryService{predictions: predictions}
}

// ListByUser returns the user's predictions, most recent first. The ordering
// is established by the repository query.
func (s *HistoryService) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	return s.predictions.ListByUser(ctx, userID)
}
