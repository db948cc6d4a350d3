package handlers

import (
	"context"
	"net/http"

	"studenthub/internal/logger"
	"studenthub/internal/models"
	"studenthub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *mockUserToken
	loginUser   *mockUserToken
	signUpErr   error
	loginErr    error
	parseID     string
	parseErr    error
	users       map[string]*models.User
	userByIDErr error
	ensureMade  bool
	ensureErr   error

	lastParseToken  string
	lastSignUpEmail string
	lastLoginEmail  string
}

type mockUserToken struct {
	user  *models.User
	token string
}

func (m *mockAuth) SignUp(name, email, password string) (*models.User, string, error) {
	m.lastSignUpEmail = email
	if m.signUpErr != nil {
		return nil, "", m.signUpErr
	}
	return m.signUpUser.user, m.signUpUser.token, nil
}

func (m *mockAuth) Login(email, password string) (*models.User, string, error) {
	m.lastLoginEmail = email
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.loginUser.user, m.loginUser.token, nil
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(id string) (*models.User, error) {
	if m.userByIDErr != nil {
		return nil, m.userByIDErr
	}
	return m.users[id], nil
}

func (m *mockAuth) EnsureAdmin() (bool, error) {
	return m.ensureMade, m.ensureErr
}

type mockStudents struct {
	listRows   []models.StudentProfile
	listPage   models.Pagination
	listErr    error
	byIDResult *models.StudentProfile
	byIDErr    error
	created    *models.StudentProfile
	createErr  error
	updated    *models.StudentProfile
	updateErr  error
	deleteErr  error
	profile    *models.StudentProfile
	profileErr error
	count      int
	countErr   error

	lastUpdateActor *models.User
	lastUpdateID    string
	lastDeleteID    string
	lastCreateIn    service.CreateStudentInput
}

func (m *mockStudents) List(ctx context.Context, page, limit int) ([]models.StudentProfile, models.Pagination, error) {
	return m.listRows, m.listPage, m.listErr
}

func (m *mockStudents) ByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	return m.byIDResult, m.byIDErr
}

func (m *mockStudents) Create(ctx context.Context, in service.CreateStudentInput) (*models.StudentProfile, error) {
	m.lastCreateIn = in
	return m.created, m.createErr
}

func (m *mockStudents) Update(ctx context.Context, id string, actor *models.User, in service.UpdateStudentInput) (*models.StudentProfile, error) {
	m.lastUpdateID = id
	m.lastUpdateActor = actor
	return m.updated, m.updateErr
}

func (m *mockStudents) Delete(ctx context.Context, id string) error {
	m.lastDeleteID = id
	return m.deleteErr
}

func (m *mockStudents) ProfileByUser(ctx context.Context, userID string) (*models.StudentProfile, error) {
	return m.profile, m.profileErr
}

func (m *mockStudents) Count(ctx context.Context) (int, error) {
	return m.count, m.countErr
}

// ---- Shared Test Helpers ----

func adminUser() *models.User {
	return &models.User{ID: "admin-1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin}
}

func studentUser() *models.User {
	return &models.User{ID: "student-1", Name: "Carol", Email: "carol@x.com", Role: models.RoleStudent}
}

// authAs wires a mockAuth that resolves any bearer token to the given user.
func authAs(u *models.User) *mockAuth {
	return &mockAuth{
		parseID: u.ID,
		users:   map[string]*models.User{u.ID: u},
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, logger.Nop(), "")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
