package banner

import (
	"context"
	"net/http"
	"strconv"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/display"
	"motopartes/internal/pkg/response"
	"motopartes/internal/pkg/validator"
	"motopartes/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

var ErrBannerNotFound = errors.New("banner not found")

type Repository interface {
	Create(ctx context.Context, b *domain.Banner) error
	List(ctx context.Context, activeOnly bool) ([]domain.Banner, error)
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Titulo    string `json:"titulo" validate:"required,max=150"`
	ImagenURL string `json:"imagen_url" validate:"required,max=500"`
	Enlace    string `json:"enlace" validate:"max=500"`
	Orden     int    `json:"orden" validate:"min=0"`
	Activo    *bool  `json:"activo"`
}

type BannerView struct {
	ID        int64  `json:"id"`
	Titulo    string `json:"titulo"`
	ImagenURL string `json:"imagen_url"`
	Enlace    string `json:"enlace,omitempty"`
	Orden     int    `json:"orden"`
	Activo    bool   `json:"activo"`
	CreatedAt string `json:"created_at"`
}

func toView(b domain.Banner) BannerView {
	return BannerView{
		ID:        b.ID,
		Titulo:    b.Titulo,
		ImagenURL: display.Image(b.ImagenURL),
		Enlace:    b.Enlace,
		Orden:     b.Orden,
		Activo:    b.Activo,
		CreatedAt: display.Timestamp(b.CreatedAt),
	}
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/banners", h.listFn(true))
}

func (h *Handler) RegisterRoutes(dashboard *gin.RouterGroup) {
	g := dashboard.Group("/banners")
	g.GET("", h.listFn(false))
	g.POST("", h.Create)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) listFn(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := h.repo.List(c.Request.Context(), activeOnly)
		if err != nil {
			response.Internal(c, err, "Failed to load banners")
			return
		}
		views := make([]BannerView, 0, len(list))
		for _, b := range list {
			views = append(views, toView(b))
		}
		response.Success(c, http.StatusOK, gin.H{"banners": views})
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errs)
		return
	}

	b := &domain.Banner{
		Titulo:    req.Titulo,
		ImagenURL: req.ImagenURL,
		Enlace:    req.Enlace,
		Orden:     req.Orden,
		Activo:    req.Activo == nil || *req.Activo,
	}
	if err := h.repo.Create(c.Request.Context(), b); err != nil {
		response.Internal(c, err, "Error al guardar el banner")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"banner": toView(*b)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid banner ID")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.CustomError(c, http.StatusNotFound, "BANNER_NOT_FOUND", errors.Wrapf(ErrBannerNotFound, "id %d", id).Error())
			return
		}
		response.Internal(c, err, "Error al eliminar el banner")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Banner eliminado"})
}
