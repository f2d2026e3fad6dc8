package auth

import (
	"net/http"

	"motopartes/internal/middleware"
	"motopartes/internal/pkg/response"
	"motopartes/internal/pkg/validator"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service   *Service
	expiresIn int64
}

func NewHandler(service *Service, expiresInSeconds int64) *Handler {
	return &Handler{service: service, expiresIn: expiresInSeconds}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales incorrectas")
			return
		}
		response.Internal(c, err, "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, SessionView{
		Token:           res.AccessToken,
		ExpiresIn:       h.expiresIn,
		User:            toUserView(res.User),
		RedirectOptions: RedirectOptions(res.User.Role),
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Internal(c, err, "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": toUserView(user)})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Internal(c, err, "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":             toUserView(user),
		"redirect_options": RedirectOptions(user.Role),
	})
}
