package v1

import (
	"net/http"

	"github.com/cheqify/backend/internal/auth"
	"github.com/cheqify/backend/internal/httputil"
	"github.com/cheqify/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
//
// Registration and login are open, /me requires a valid token.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/register", OptionsRegister)
		r.POST("/register", Register)
		r.OPTIONS("/login", OptionsLogin)
		r.POST("/login", Login)
		r.OPTIONS("/me", OptionsMe)
		r.GET("/me", auth.Middleware(), GetMe)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
func OptionsRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/me [options]
func OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Creates a user account. The first account on an instance becomes the admin, every later one an employee.
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201			{object}	UserResponse
// @Failure		400			{object}	UserResponse
// @Failure		500			{object}	UserResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	hash, err := auth.HashPassword(credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &s,
		})
		return
	}

	count, err := models.UserCount(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	role := models.RoleEmployee
	if count == 0 {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:       credentials.Username,
		HashedPassword: hash,
		Role:           role,
	}
	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Login
// @Description	Verifies credentials and returns a session token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &s,
		})
		return
	}

	// An unknown username and a wrong password get the same answer
	var user models.User
	err = models.DB.Where(&models.User{Username: credentials.Username}).First(&user).Error
	if err != nil {
		s := auth.ErrCredentialsInvalid.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{
			Error: &s,
		})
		return
	}

	err = auth.VerifyPassword(user, credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{
			Error: &s,
		})
		return
	}

	token, err := auth.IssueToken(user)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &Session{
		Token: token,
		User:  newUser(user),
	}})
}

// @Summary		Get current user
// @Description	Returns the account the request is authenticated as
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Router			/v1/auth/me [get]
// @Security		Bearer
func GetMe(c *gin.Context) {
	user, err := auth.CurrentUser(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}
