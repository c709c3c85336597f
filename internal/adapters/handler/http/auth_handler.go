package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/core/services"
)

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type AuthHandler struct {
	service  *services.AuthService
	tokens   TokenIssuer
	devLogin bool
}

func NewAuthHandler(service *services.AuthService, tokens TokenIssuer, devLogin bool) *AuthHandler {
	return &AuthHandler{
		service:  service,
		tokens:   tokens,
		devLogin: devLogin,
	}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"omitempty,min=2,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Credentials"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} map[string]any
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithSession(c, user)
}

// DevLogin godoc
// @Summary Sign in as the fixed development user
// @Tags auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Failure 404 {object} map[string]any
// @Router /login [get]
func (h *AuthHandler) DevLogin(c *gin.Context) {
	if !h.devLogin {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	user, err := h.service.DevLogin(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithSession(c, user)
}

// CurrentUser godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]any
// @Router /auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Change the display name
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body updateProfileRequest true "New name"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]any
// @Router /profile [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), services.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, user *domain.User) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, User: user})
}

// RegisterRoutes mounts the public endpoints on public and the session-bound
// ones on protected.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
	public.GET("/login", h.DevLogin)

	protected.GET("/auth/user", h.CurrentUser)
	protected.PATCH("/profile", h.UpdateProfile)
}
