package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/opikzxx/ad-catering/middleware"
	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"
	"github.com/opikzxx/ad-catering/utils"

	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	Users     repository.UserRepository
	Sessions  repository.SessionRepository
	JWTSecret string
}

type registerReq struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a USER-role account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		writeValidationErrors(w, errs)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	}

	if err := h.Users.CreateUser(user); err != nil {
		if err == repository.ErrDuplicateEmail {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login is the admin-token login: only ADMIN accounts get a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	user, ok := h.verifyCredentials(w, r)
	if !ok {
		return
	}

	if user.Role != models.RoleAdmin {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}

	token, expiresAt, err := utils.GenerateAdminToken(user.ID, user.Email, user.Role, h.JWTSecret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	user.Password = ""

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token":      token,
			"expires_at": expiresAt,
			"user":       user,
		},
	})
}

// Session handles the cookie-backed browser login consumed by the edge gate.
// POST signs in, DELETE signs out.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.sessionLogin(w, r)
	case http.MethodDelete:
		h.sessionLogout(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
	}
}

func (h *AuthHandler) sessionLogin(w http.ResponseWriter, r *http.Request) {
	user, ok := h.verifyCredentials(w, r)
	if !ok {
		return
	}

	token, err := generateSessionToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := h.Sessions.CreateSession(session); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	user.Password = ""

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data:    user,
	})
}

func (h *AuthHandler) sessionLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		_ = h.Sessions.DeleteSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Logged out",
	})
}

// verifyCredentials decodes the login body and checks the password. Wrong
// email and wrong password respond identically.
func (h *AuthHandler) verifyCredentials(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return nil, false
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		writeValidationErrors(w, errs)
		return nil, false
	}

	user, err := h.Users.GetUserByEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user")
		return nil, false
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return nil, false
	}

	return user, true
}

func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
