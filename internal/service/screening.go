package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"riskscreen/internal/classifier"
	"riskscreen/internal/models"
	"riskscreen/internal/repository"
)

// Result labels produced by the screening.
const (
	LabelHighRisk = "High Risk"
	LabelLowRisk  = "Low Risk"
)

const maxAge = 120

// Validation errors for symptom submissions.
var (
	ErrSymptomOutOfRange = errors.New("symptom flags must be 0 or 1")
	ErrAgeOutOfRange     = fmt.Errorf("age must be between 0 and %d", maxAge)
)

// SymptomInput is one questionnaire submission. Symptom fields are presence
// flags (0 or 1); age is in years.
type SymptomInput struct {
	Fever  int
	Tired  int
	Cough  int
	Breath int
	Throat int
	Age    int
}

// ScreeningService scores a submission against the frozen classifier and
// records the outcome in the user's history.
type ScreeningService struct {
	predictions repository.Predictions
	clf         Classifier
}

func NewScreeningService(predictions repository.Predictions, clf Classifier) *ScreeningService {
	return &ScreeningService{predictions: predictions, clf: clf}
}

// Predict validates the input, classifies it and appends the resulting
// prediction to the user's history. The returned record is the stored row.
func (s *ScreeningService) Predict(ctx context.Context, userID int, in SymptomInput) (models.Prediction, error) {
	if err := validateInput(in); err != nil {
		return models.Prediction{}, err
	}

	// Vector order is the model's contract: fever, tired, cough, breath, throat, age.
	vector := [classifier.FeatureCount]int{in.Fever, in.Tired, in.Cough, in.Breath, in.Throat, in.Age}

	label := LabelLowRisk
	if s.clf.Score(vector) == 1 {
		label = LabelHighRisk
	}

	p := models.Prediction{
		UserID:    userID,
		Fever:     in.Fever,
		Tired:     in.Tired,
		Cough:     in.Cough,
		Breath:    in.Breath,
		Throat:    in.Throat,
		Age:       in.Age,
		Result:    label,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.predictions.Append(ctx, p)
	if err != nil {
		return models.Prediction{}, err
	}
	p.ID = id
	return p, nil
}

func validateInput(in SymptomInput) error {
	for _, flag := range []int{in.Fever, in.Tired, in.Cough, in.Breath, in.Throat} {
		if flag < 0 || flag > 1 {
			return ErrSymptomOutOfRange
		}
	}
	if in.Age < 0 || in.Age > maxAge {
		return ErrAgeOutOfRange
	}
	return nil
}
