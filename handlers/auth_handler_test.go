package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opikzxx/ad-catering/models"
)

const testJWTSecret = "handler-test-secret"

func newAuthHandler() (*AuthHandler, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{}
	sessions := newFakeSessionRepo()
	return &AuthHandler{Users: users, Sessions: sessions, JWTSecret: testJWTSecret}, users, sessions
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRegister_Success(t *testing.T) {
	h, users, _ := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"name":"Andi","email":"andi@example.com","password":"secret1"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if len(users.users) != 1 {
		t.Fatalf("stored users = %d, want 1", len(users.users))
	}
	stored := users.users[0]
	if stored.Role != models.RoleUser {
		t.Errorf("role = %q, want USER", stored.Role)
	}
	if stored.Password == "secret1" {
		t.Error("password stored in plain text")
	}
	if strings.Contains(rec.Body.String(), stored.Password) {
		t.Error("password hash leaked in response")
	}
}

func TestRegister_DuplicateEmailLeavesNoNewRow(t *testing.T) {
	h, users, _ := newAuthHandler()

	first := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"dup@example.com","password":"secret1"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", first.Code)
	}

	second := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"dup@example.com","password":"another1"}`)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second register status = %d, want 400", second.Code)
	}
	if len(users.users) != 1 {
		t.Fatalf("stored users = %d, want 1 after duplicate rejection", len(users.users))
	}
}

func TestRegister_ShortPasswordFieldError(t *testing.T) {
	h, users, _ := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"short@example.com","password":"abc"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if _, ok := resp.Errors["password"]; !ok {
		t.Fatalf("expected a password field error, got %v", resp.Errors)
	}
	if len(users.users) != 0 {
		t.Fatal("invalid registration created a row")
	}
}

func TestRegister_MissingEmailFieldError(t *testing.T) {
	h, _, _ := newAuthHandler()

	rec := postJSON(t, h.Register, "/api/auth/register", `{"password":"secret1"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if _, ok := resp.Errors["email"]; !ok {
		t.Fatalf("expected an email field error, got %v", resp.Errors)
	}
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password, role string) {
	t.Helper()
	u := &models.User{Email: email, Password: password, Role: role}
	if err := users.CreateUser(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestAdminLogin_IssuesToken(t *testing.T) {
	h, users, _ := newAuthHandler()
	seedUser(t, users, "admin@example.com", "hunter22", models.RoleAdmin)

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"admin@example.com","password":"hunter22"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data shape = %T", resp.Data)
	}
	if token, _ := data["token"].(string); token == "" {
		t.Fatal("no token in response")
	}
}

func TestAdminLogin_NonAdminDenied(t *testing.T) {
	h, users, _ := newAuthHandler()
	seedUser(t, users, "user@example.com", "hunter22", models.RoleUser)

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"user@example.com","password":"hunter22"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Message != "Access denied" {
		t.Fatalf("message = %q, want Access denied", resp.Message)
	}
}

func TestAdminLogin_WrongCredentialsIdentical(t *testing.T) {
	h, users, _ := newAuthHandler()
	seedUser(t, users, "admin@example.com", "hunter22", models.RoleAdmin)

	wrongPassword := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"admin@example.com","password":"nope123"}`)
	unknownEmail := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ghost@example.com","password":"nope123"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPassword.Code, unknownEmail.Code)
	}
	a := decodeResponse(t, wrongPassword)
	b := decodeResponse(t, unknownEmail)
	if a.Message != b.Message {
		t.Fatalf("wrong-password and unknown-email messages differ: %q vs %q", a.Message, b.Message)
	}
}

func TestSessionLogin_SetsCookieAndStoresSession(t *testing.T) {
	h, users, sessions := newAuthHandler()
	seedUser(t, users, "user@example.com", "hunter22", models.RoleUser)

	rec := postJSON(t, h.Session, "/api/auth/session",
		`{"email":"user@example.com","password":"hunter22"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if _, ok := sessions.sessions[cookie.Value]; !ok {
		t.Fatal("session row not stored for cookie token")
	}
}

func TestSessionLogout_DeletesSession(t *testing.T) {
	h, users, sessions := newAuthHandler()
	seedUser(t, users, "user@example.com", "hunter22", models.RoleUser)

	login := postJSON(t, h.Session, "/api/auth/session",
		`{"email":"user@example.com","password":"hunter22"}`)
	var token string
	for _, c := range login.Result().Cookies() {
		if c.Name == "session_token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no session cookie after login")
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}
	if _, ok := sessions.sessions[token]; ok {
		t.Fatal("session row still present after logout")
	}
}
