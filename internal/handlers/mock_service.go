package handlers

import (
	"context"
	"html/template"

	"riskscreen/internal/models"
	"riskscreen/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service mocks shared by handler tests ----

type mockAuth struct {
	registerID  int
	registerErr error
	authUser    *models.User
	authErr     error
	issuedToken string
	issueErr    error
	parseID     int
	parseErr    error

	registerCalls        int
	lastRegisterEmail    string
	lastRegisterPassword string
	lastAuthEmail        string
	lastAuthPassword     string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, email, password string) (int, error) {
	m.registerCalls++
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	m.lastAuthEmail = email
	m.lastAuthPassword = password
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.authUser, nil
}

func (m *mockAuth) IssueToken(userID int) (string, error) {
	return m.issuedToken, m.issueErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockScreening struct {
	result models.Prediction
	err    error

	calls      int
	lastUserID int
	lastInput  service.SymptomInput
}

func (m *mockScreening) Predict(_ context.Context, userID int, in service.SymptomInput) (models.Prediction, error) {
	m.calls++
	m.lastUserID = userID
	m.lastInput = in
	if m.err != nil {
		return models.Prediction{}, m.err
	}
	return m.result, nil
}

type mockHistory struct {
	rows []models.Prediction
	err  error

	calls      int
	lastUserID int
}

func (m *mockHistory) ListByUser(_ context.Context, userID int) ([]models.Prediction, error) {
	m.calls++
	m.lastUserID = userID
	return m.rows, m.err
}

// testTemplates builds a minimal in-memory template set so handler tests do
// not depend on the web/templates directory.
func testTemplates() *template.Template {
	root := template.New("test")
	pages := map[string]string{
		"landing.html":   `landing{{with .Flash}} [{{.Category}}] {{.Message}}{{end}}`,
		"register.html":  `register{{with .Flash}} [{{.Category}}] {{.Message}}{{end}}`,
		"login.html":     `login{{with .Flash}} [{{.Category}}] {{.Message}}{{end}}`,
		"predict.html":   `predict{{with .Flash}} [{{.Category}}] {{.Message}}{{end}}{{with .Result}} result={{.}}{{end}}{{range .Symptoms}} {{.Name}}={{.Value}}{{end}}`,
		"dashboard.html": `dashboard{{range .History}} row={{.ID}}:{{.Result}}{{end}}`,
	}
	for name, body := range pages {
		template.Must(root.New(name).Parse(body))
	}
	return root
}

// newTestRouter wires a gin engine with the in-memory templates and all
// page routes registered against the given services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(testTemplates())
	h := NewHandler(s, nil, nil)
	h.RegisterRoutes(r)
	return r
}
