package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studenthub/internal/models"
	"studenthub/internal/service"
)

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpHandler(t *testing.T) {
	alice := &models.User{ID: "u-1", Name: "Alice", Email: "alice@x.com", Role: models.RoleStudent}
	auth := &mockAuth{signUpUser: &mockUserToken{user: alice, token: "tok123"}}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/api/auth/signup", `{"name":"Alice","email":"alice@x.com","password":"pass123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status=%d, body=%s", w.Code, w.Body.String())
	}

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["id"] != "u-1" || m["role"] != "student" || m["token"] != "tok123" {
		t.Fatalf("unexpected payload: %v", m)
	}
	if _, leaked := m["password"]; leaked {
		t.Fatal("password must never appear in the response")
	}
}

func TestSignUpHandler_DuplicateEmail(t *testing.T) {
	auth := &mockAuth{signUpErr: service.ErrDuplicateEmail}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/api/auth/signup", `{"name":"A","email":"a@x.com","password":"pass123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if got := decodeError(t, w.Body.Bytes()); got != errDuplicateEmailMsg {
		t.Fatalf("error: got %q, want %q", got, errDuplicateEmailMsg)
	}
}

func TestSignUpHandler_MissingBodyFields(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}}
	r := newTestRouter(s)

	w := postJSON(r, "/api/auth/signup", `{"name":"A"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	alice := &models.User{ID: "u-1", Name: "Alice", Email: "alice@x.com", Role: models.RoleStudent}
	auth := &mockAuth{loginUser: &mockUserToken{user: alice, token: "tok456"}}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/api/auth/login", `{"email":"alice@x.com","password":"pass123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}

	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok456" {
		t.Fatalf("expected token tok456, got %v", m["token"])
	}
}

func TestLoginHandler_InvalidCredentialsSingleMessage(t *testing.T) {
	// Whether the email is unknown or the password wrong, the service
	// returns the same sentinel and the handler one message.
	auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	wrongPass := postJSON(r, "/api/auth/login", `{"email":"known@x.com","password":"wrong"}`)
	unknown := postJSON(r, "/api/auth/login", `{"email":"ghost@x.com","password":"whatever"}`)

	for _, w := range []*httptest.ResponseRecorder{wrongPass, unknown} {
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	}
	m1 := decodeError(t, wrongPass.Body.Bytes())
	m2 := decodeError(t, unknown.Body.Bytes())
	if m1 != errInvalidCredentialsMsg || m1 != m2 {
		t.Fatalf("messages must be identical, got %q and %q", m1, m2)
	}
}

func TestLoginHandler_StoreErrorIsGeneric(t *testing.T) {
	auth := &mockAuth{loginErr: errors.New("sqlite: database is locked")}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/api/auth/login", `{"email":"a@x.com","password":"pass123"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if got := decodeError(t, w.Body.Bytes()); got != errLoginServerMsg {
		t.Fatalf("internal detail must not leak, got %q", got)
	}
}

func TestAdminSignUpHandler(t *testing.T) {
	cases := []struct {
		name     string
		auth     *mockAuth
		wantCode int
	}{
		{name: "creates admin", auth: &mockAuth{ensureMade: true}, wantCode: http.StatusCreated},
		{name: "admin already exists", auth: &mockAuth{ensureMade: false}, wantCode: http.StatusOK},
		{name: "store error", auth: &mockAuth{ensureErr: errors.New("db down")}, wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Authorization: tc.auth}
			r := newTestRouter(s)

			w := postJSON(r, "/api/auth/admin-signup", ``)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}
