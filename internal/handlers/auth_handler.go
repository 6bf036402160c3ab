package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/models"
	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/services"
)

// AuthHandler serves signup, login and profile endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/signup: public signup, always creates a student account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var in services.SignupInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.authService.Signup(in, "")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/admin/users: admin-only user creation with an explicit role.
func (h *AuthHandler) AdminCreateUser(c *gin.Context) {
	var in services.SignupInput
	if !bindJSON(c, &in) {
		return
	}

	user, err := h.authService.Signup(in, models.RoleAdmin)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login: verifies credentials, returns a token and also
// sets it as the jwt cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		writeError(c, err)
		return
	}

	c.SetCookie("jwt", token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
		"role":  user.Role,
	})
}

// POST /api/auth/logout: clears the jwt cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}

// GET /api/profile: returns the authenticated account.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
