package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"riskscreen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// predictForm fields are pointers so that a submitted 0 is distinguishable
// from a missing field.
type predictForm struct {
	Fever  *int `form:"fever" binding:"required"`
	Tired  *int `form:"tired" binding:"required"`
	Cough  *int `form:"cough" binding:"required"`
	Breath *int `form:"breath" binding:"required"`
	Throat *int `form:"throat" binding:"required"`
	Age    *int `form:"age" binding:"required"`
}

// symptomView is one labelled symptom value for the result page.
type symptomView struct {
	Name  string
	Value int
}

func (h *Handler) predictPage(c *gin.Context) {
	h.render(c, http.StatusOK, "predict.html", nil)
}

func (h *Handler) predict(c *gin.Context) {
	var form predictForm
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, flashDanger, formErrorMessage(err))
		c.Redirect(http.StatusFound, "/predict")
		return
	}

	in := service.SymptomInput{
		Fever:  *form.Fever,
		Tired:  *form.Tired,
		Cough:  *form.Cough,
		Breath: *form.Breath,
		Throat: *form.Throat,
		Age:    *form.Age,
	}

	userID := currentUserID(c)
	p, err := h.services.Predict(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, service.ErrSymptomOutOfRange) || errors.Is(err, service.ErrAgeOutOfRange) {
			setFlash(c, flashDanger, err.Error())
			c.Redirect(http.StatusFound, "/predict")
			return
		}
		if h.log != nil {
			h.log.Errorw("predict_failed", "err", err, "user_id", userID)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	h.metrics.ObservePrediction(p.Result)
	if h.log != nil {
		h.log.Infow("prediction_recorded", "user_id", userID, "result", p.Result)
	}

	h.render(c, http.StatusOK, "predict.html", gin.H{
		"Result": p.Result,
		"Symptoms": []symptomView{
			{Name: "Fever", Value: p.Fever},
			{Name: "Tiredness", Value: p.Tired},
			{Name: "Dry Cough", Value: p.Cough},
			{Name: "Breathing Difficulty", Value: p.Breath},
			{Name: "Sore Throat", Value: p.Throat},
		},
	})
}

// formErrorMessage turns a binding failure into a user-facing flash text,
// naming the offending field when the validator identifies one.
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("The %s field is required.", strings.ToLower(verrs[0].Field()))
	}
	return "All symptom fields must be whole numbers."
}
