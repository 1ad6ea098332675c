package service

import (
	"context"

	"riskscreen/internal/classifier"
	"riskscreen/internal/models"
	"riskscreen/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, email, password string) (int, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(userID int) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Screening runs one inference over a symptom submission and records it.
type Screening interface {
	Predict(ctx context.Context, userID int, in SymptomInput) (models.Prediction, error)
}

// History exposes a user's past submissions, most recent first.
type History interface {
	ListByUser(ctx context.Context, userID int) ([]models.Prediction, error)
}

// Classifier is the injected scoring function of the frozen model.
// *classifier.Tree satisfies it; tests substitute a deterministic fake.
type Classifier interface {
	Score(v [classifier.FeatureCount]int) int
}

type Service struct {
	Authorization
	Screening
	History
}

// NewService wires the repository layer and the frozen classifier into
// concrete services.
func NewService(repos *repository.Repository, clf Classifier, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Screening:     NewScreeningService(repos.Predictions, clf),
		History:       NewHistoryService(repos.Predictions),
	}
}
