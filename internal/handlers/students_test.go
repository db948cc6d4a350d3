package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studenthub/internal/models"
	"studenthub/internal/service"
)

func doAuthed(r http.Handler, method, path, body string, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, vs := range authHeader(token) {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func sampleProfile() *models.StudentProfile {
	return &models.StudentProfile{
		Student: models.Student{ID: "s-1", UserID: "student-1", Course: "Go 101"},
		Name:    "Carol",
		Email:   "carol@x.com",
	}
}

func TestListStudents_AdminOnly(t *testing.T) {
	students := &mockStudents{
		listRows: []models.StudentProfile{*sampleProfile()},
		listPage: models.Pagination{CurrentPage: 1, TotalPages: 1, TotalStudents: 1, Limit: 10},
	}

	// admin sees the page
	s := &service.Service{Authorization: authAs(adminUser()), Students: students}
	r := newTestRouter(s)
	w := doAuthed(r, http.MethodGet, "/api/students?page=1&limit=10", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Students   []models.StudentProfile `json:"students"`
		Pagination models.Pagination       `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Students) != 1 || resp.Pagination.TotalStudents != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// student gets 403
	s = &service.Service{Authorization: authAs(studentUser()), Students: students}
	r = newTestRouter(s)
	w = doAuthed(r, http.MethodGet, "/api/students", "", "tok")
	if w.Code != http.StatusForbidden {
		t.Fatalf("student list status=%d, want 403", w.Code)
	}

	// anonymous gets 401
	w = doAuthed(r, http.MethodGet, "/api/students", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list status=%d, want 401", w.Code)
	}
}

func TestGetStudent_NotFound(t *testing.T) {
	students := &mockStudents{byIDErr: service.ErrStudentNotFound}
	s := &service.Service{Authorization: authAs(adminUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/students/missing", "", "tok")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
	if got := decodeError(t, w.Body.Bytes()); got != errStudentNotFoundMsg {
		t.Fatalf("error: got %q, want %q", got, errStudentNotFoundMsg)
	}
}

func TestCreateStudent(t *testing.T) {
	students := &mockStudents{created: sampleProfile()}
	s := &service.Service{Authorization: authAs(adminUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPost, "/api/students",
		`{"name":"Carol","email":"carol@x.com","password":"pass123","course":"Go 101"}`, "tok")
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if students.lastCreateIn.Course != "Go 101" {
		t.Fatalf("service received %+v", students.lastCreateIn)
	}
}

func TestCreateStudent_BadRequestMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "already enrolled", err: service.ErrStudentExists},
		{name: "admin email", err: service.ErrAdminUser},
		{name: "duplicate email", err: service.ErrDuplicateEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			students := &mockStudents{createErr: tc.err}
			s := &service.Service{Authorization: authAs(adminUser()), Students: students}
			r := newTestRouter(s)

			w := doAuthed(r, http.MethodPost, "/api/students",
				`{"name":"X","email":"x@x.com","course":"Go 101"}`, "tok")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400 (body=%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateStudent_PassesActorThrough(t *testing.T) {
	students := &mockStudents{updated: sampleProfile()}
	actor := studentUser()
	s := &service.Service{Authorization: authAs(actor), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPut, "/api/students/s-1", `{"course":"Go 201"}`, "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if students.lastUpdateActor == nil || students.lastUpdateActor.ID != actor.ID {
		t.Fatalf("actor not forwarded: %+v", students.lastUpdateActor)
	}
	if students.lastUpdateID != "s-1" {
		t.Fatalf("id not forwarded: %q", students.lastUpdateID)
	}
}

func TestUpdateStudent_ForbiddenForOtherStudent(t *testing.T) {
	students := &mockStudents{updateErr: service.ErrForbidden}
	s := &service.Service{Authorization: authAs(studentUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPut, "/api/students/other", `{"course":"X"}`, "tok")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", w.Code)
	}
}

func TestDeleteStudent(t *testing.T) {
	students := &mockStudents{}
	s := &service.Service{Authorization: authAs(adminUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodDelete, "/api/students/s-1", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if students.lastDeleteID != "s-1" {
		t.Fatalf("delete id: got %q", students.lastDeleteID)
	}

	// students cannot delete
	s = &service.Service{Authorization: authAs(studentUser()), Students: students}
	r = newTestRouter(s)
	w = doAuthed(r, http.MethodDelete, "/api/students/s-1", "", "tok")
	if w.Code != http.StatusForbidden {
		t.Fatalf("student delete status=%d, want 403", w.Code)
	}
}

func TestMyProfile(t *testing.T) {
	students := &mockStudents{profile: sampleProfile()}
	s := &service.Service{Authorization: authAs(studentUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/students/profile", "", "tok")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var p models.StudentProfile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "Carol" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestMyProfile_NotEnrolled(t *testing.T) {
	students := &mockStudents{profileErr: service.ErrStudentNotFound}
	s := &service.Service{Authorization: authAs(studentUser()), Students: students}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/students/profile", "", "tok")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
	if got := decodeError(t, w.Body.Bytes()); got != errProfileNotFoundMsg {
		t.Fatalf("error: got %q, want %q", got, errProfileNotFoundMsg)
	}
}
