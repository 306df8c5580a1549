package handlers

import (
	"net/http"
	"time"

	"chainmind-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler implements the demo login gate. It performs no real
// authentication: any submitted credentials succeed after a fixed delay
// that stands in for a round trip to an identity provider.
type AuthHandler struct {
	loginDelay time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(loginDelay time.Duration) *AuthHandler {
	return &AuthHandler{
		loginDelay: loginDelay,
	}
}

// Login accepts any credentials and issues a session token.
func (ah *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	select {
	case <-time.After(ah.loginDelay):
	case <-c.Request.Context().Done():
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"login": models.LoginResponse{
			Token:    newSessionToken(),
			Username: req.Username,
		},
	})
}
