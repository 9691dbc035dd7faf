package v1

import (
	"net/http"
	"strings"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Credentials is the request body for registration and login.
type Credentials struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Jane"` // Only used on registration
}

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	Data  UserData `json:"data"`
	Token string   `json:"token"` // Also set as httpOnly cookie
}

// UserResponse wraps the authenticated user.
type UserResponse struct {
	Data UserData `json:"data"`
}

// UserData is the public representation of a user account.
type UserData struct {
	models.DefaultModel
	Email string `json:"email" example:"jane@example.com"`
	Name  string `json:"name" example:"Jane"`
}

func newUserData(user models.User) UserData {
	return UserData{
		DefaultModel: user.DefaultModel,
		Email:        user.Email,
		Name:         user.Name,
	}
}

// RegisterAuthRoutes registers the routes for registration and session
// handling. The /me route requires authentication and is registered on
// the protected group.
func RegisterAuthRoutes(public, protected *gin.RouterGroup, cfg config.Config) {
	public.OPTIONS("/register", httputil.OptionsPost)
	public.POST("/register", Register(cfg))

	public.OPTIONS("/login", httputil.OptionsPost)
	public.POST("/login", Login(cfg))

	public.OPTIONS("/logout", httputil.OptionsPost)
	public.POST("/logout", Logout)

	protected.OPTIONS("/me", httputil.OptionsGet)
	protected.GET("/me", Me)
}

// Register creates a new user account and starts a session
//
//	@Summary		Register
//	@Description	Creates a new user account and logs it in
//	@Tags			Auth
//	@Produce		json
//	@Success		201	{object}	AuthResponse
//	@Failure		400	{object}	httpError
//	@Failure		409	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			credentials	body	Credentials	true	"Account"
//	@Router			/v1/auth/register [post]
func Register(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body Credentials
		if err := httputil.BindData(c, &body); err != nil {
			e(c, err)
			return
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		if !strings.Contains(body.Email, "@") {
			e(c, errEmailInvalid)
			return
		}

		if len(body.Password) < 8 {
			e(c, errPasswordTooShort)
			return
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			e(c, models.ErrGeneral)
			return
		}

		user := models.User{
			Email:        body.Email,
			PasswordHash: hash,
			Name:         body.Name,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			e(c, err)
			return
		}

		startSession(c, cfg, user, http.StatusCreated)
	}
}

// Login starts a session for an existing account
//
//	@Summary		Login
//	@Description	Verifies the credentials and starts a session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	AuthResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Param			credentials	body	Credentials	true	"Credentials"
//	@Router			/v1/auth/login [post]
func Login(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body Credentials
		if err := httputil.BindData(c, &body); err != nil {
			e(c, err)
			return
		}

		var user models.User
		err := models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(body.Email))).Error
		if err != nil || !auth.CheckPassword(body.Password, user.PasswordHash) {
			// Do not leak whether the account exists
			e(c, errInvalidCredentials)
			return
		}

		startSession(c, cfg, user, http.StatusOK)
	}
}

// Logout ends the session
//
//	@Summary		Logout
//	@Description	Clears the session cookie
//	@Tags			Auth
//	@Success		204
//	@Router			/v1/auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user
//
//	@Summary		Current user
//	@Description	Returns the account the session belongs to
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Router			/v1/auth/me [get]
//	@Security		Bearer
func Me(c *gin.Context) {
	var user models.User
	if err := models.DB.First(&user, "id = ?", auth.UserID(c)).Error; err != nil {
		e(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUserData(user)})
}

func startSession(c *gin.Context, cfg config.Config, user models.User, code int) {
	token, err := auth.NewToken(cfg.JWTSecret, user.ID)
	if err != nil {
		e(c, models.ErrGeneral)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(auth.TokenLifetime.Seconds()), "/", "", false, true)

	c.JSON(code, AuthResponse{Data: newUserData(user), Token: token})
}
