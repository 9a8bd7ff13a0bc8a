package v1

import (
	"net/http"
	"strings"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/httputil"
	"github.com/centuition/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for registration and login
// with the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup, secret string) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register(secret))

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login(secret))
}

// Credentials represents the user supplied login data.
type Credentials struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Jane" default:""` // Only used on registration
}

type SessionResponse struct {
	Data  *Session `json:"data"`  // The session, if one was created
	Error *string  `json:"error"` // The error, if any occurred
}

type Session struct {
	Token string      `json:"token"` // Bearer token for the Authorization header
	User  models.User `json:"user"`  // The authenticated user
}

// Register creates a new user and returns a session for it.
func Register(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials Credentials
		err := httputil.BindData(c, &credentials)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		if credentials.Email == "" {
			s := errEmailRequired.Error()
			c.JSON(status(errEmailRequired), SessionResponse{Error: &s})
			return
		}

		if len(credentials.Password) < 8 {
			s := errPasswordTooShort.Error()
			c.JSON(status(errPasswordTooShort), SessionResponse{Error: &s})
			return
		}

		hash, err := auth.HashPassword(credentials.Password)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
			return
		}

		user := models.User{
			Email:        credentials.Email,
			PasswordHash: hash,
			Name:         credentials.Name,
		}

		err = models.DB.Create(&user).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		token, err := auth.NewToken(secret, user.ID, user.Email)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
			return
		}

		c.JSON(http.StatusCreated, SessionResponse{Data: &Session{Token: token, User: user}})
	}
}

// Login verifies the credentials and returns a session.
//
// Unknown emails and wrong passwords are indistinguishable in the
// response.
func Login(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var credentials Credentials
		err := httputil.BindData(c, &credentials)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		var user models.User
		err = models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(credentials.Email))).Error
		if err != nil || !auth.CheckPassword(user.PasswordHash, credentials.Password) {
			s := errInvalidCredentials.Error()
			c.JSON(status(errInvalidCredentials), SessionResponse{Error: &s})
			return
		}

		token, err := auth.NewToken(secret, user.ID, user.Email)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
			return
		}

		c.JSON(http.StatusOK, SessionResponse{Data: &Session{Token: token, User: user}})
	}
}
