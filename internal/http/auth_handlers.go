package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/catalog/internal/auth"
)

// AuthController exposes registration, login/logout and API token
// management.
type AuthController struct {
	service        *auth.Service
	sessionManager *auth.SessionManager
}

func NewAuthController(service *auth.Service, sessionManager *auth.SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register.
func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondFieldErrors(c, FieldErrors{"email": "a user with this email already exists"})
		case errors.Is(err, auth.ErrEmailInvalid):
			respondFieldErrors(c, FieldErrors{"email": "invalid email format"})
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			respondFieldErrors(c, FieldErrors{"password": err.Error()})
		default:
			respondInternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login. On success the caller gets a session
// cookie and a fresh API token for Bearer authentication.
func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := controller.service.IssueToken(user)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	if controller.sessionManager != nil {
		if err := controller.sessionManager.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout handles POST /api/auth/logout.
func (controller *AuthController) Logout(c *gin.Context) {
	if controller.sessionManager != nil {
		if err := controller.sessionManager.DestroySession(c.Request); err != nil {
			respondInternalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RegenerateToken handles POST /api/auth/token for an authenticated caller.
// The previous token stops working.
func (controller *AuthController) RegenerateToken(c *gin.Context) {
	user, err := controller.service.UserByID(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err)
		return
	}

	token, err := controller.service.IssueToken(user)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
