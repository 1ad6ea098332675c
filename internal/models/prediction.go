package models

import "time"

// Prediction is one screening submission and its outcome. Rows are
// append-only: written once per successful submission, never updated.
type Prediction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Fever     int       `json:"fever"`
	Tired     int       `json:"tired"`
	Cough     int       `json:"cough"`
	Breath    int       `json:"breath"`
	Throat    int       `json:"throat"`
	Age       int       `json:"age"`
	Result    string    `json:"result"` // "High Risk" | "Low Risk"
	CreatedAt time.Time `json:"created_at"`
}
