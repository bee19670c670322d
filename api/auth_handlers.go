package api

import (
	"net/http"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
)

// AuthResponse is the login/register envelope the frontend consumes. The
// refresh token field is reserved; this backend does not populate it.
type AuthResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message,omitempty"`
	Token        string         `json:"token,omitempty"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	User         *users.Profile `json:"user,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload, shared with the frontend's API
// client.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Shown on any credential failure. Never reveals which field was wrong.
const badCredentialsMessage = "incorrect email or password"

// LoginHandler verifies the credentials and issues a token (POST /api/auth/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "invalid request body"})
			return
		}

		user, err := s.repos.Users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: badCredentialsMessage})
			return
		}

		if !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: badCredentialsMessage})
			return
		}

		signed, err := s.tokens.Issue(user)
		if err != nil {
			s.log.Err(err).Str("email", user.Email).Msg("token issue failed")
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "login temporarily unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Success: true,
			Token:   signed,
			User:    user.Profile(),
		})
	}
}

// RegisterHandler creates a Standard user (POST /api/auth/register)
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "invalid request body"})
			return
		}

		if req.Email == "" {
			writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "email is required"})
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
			return
		}

		passwordHash, err := users.HashPassword(req.Password)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "registration temporarily unavailable"})
			return
		}

		user, err := s.repos.Users.Create(r.Context(), &users.User{
			Email:        req.Email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         users.RoleStandard,
		})
		if err != nil {
			if err == users.ErrDuplicateEmail {
				writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "email already registered"})
				return
			}
			s.log.Err(err).Msg("user create failed")
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "registration temporarily unavailable"})
			return
		}

		signed, err := s.tokens.Issue(user)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "registration temporarily unavailable"})
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Token:   signed,
			User:    user.Profile(),
		})
	}
}

// ProfileHandler returns the authenticated user's profile (GET /api/user/profile)
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.repos.Users.GetByID(r.Context(), claims.Subject)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		writeJSON(w, http.StatusOK, user.Profile())
	}
}
