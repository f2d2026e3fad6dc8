package category

import (
	"net/http"
	"strconv"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/response"
	"motopartes/internal/pkg/validator"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type CategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
	Estado string `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
}

type SubcategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=100"`
	CategoriaID int64  `json:"categoria_id" validate:"required,gt=0"`
	Estado      string `json:"estado" validate:"omitempty,oneof=Activo Inactivo"`
}

type CategoriaRef struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type SubcategoriaView struct {
	ID          int64        `json:"id"`
	Nombre      string       `json:"nombre"`
	CategoriaID int64        `json:"categoria_id"`
	Estado      string       `json:"estado"`
	Categoria   CategoriaRef `json:"categoria"`
}

func toSubView(s domain.Subcategoria) SubcategoriaView {
	v := SubcategoriaView{ID: s.ID, Nombre: s.Nombre, CategoriaID: s.CategoriaID, Estado: string(s.Estado)}
	if s.Categoria != nil {
		v.Categoria = CategoriaRef{ID: s.Categoria.ID, Nombre: s.Categoria.Nombre}
	}
	return v
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(dashboard *gin.RouterGroup) {
	c := dashboard.Group("/categorias")
	c.GET("", h.ListCategorias)
	c.POST("", h.CreateCategoria)
	c.PUT("/:id", h.UpdateCategoria)
	c.DELETE("/:id", h.DeleteCategoria)

	s := dashboard.Group("/subcategorias")
	s.GET("", h.ListSubcategorias)
	s.POST("", h.CreateSubcategoria)
	s.PUT("/:id", h.UpdateSubcategoria)
	s.DELETE("/:id", h.DeleteSubcategoria)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func bind[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return req, false
	}
	if errs := validator.Validate(req); errs != nil {
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errs)
		return req, false
	}
	return req, true
}

func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Registro no encontrado")
	case errors.Is(err, ErrNameExists):
		response.Error(c, http.StatusConflict, "NAME_EXISTS", "Ya existe una categoría con ese nombre")
	case errors.Is(err, ErrParentMissing):
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", map[string]string{"categoria_id": "exists"})
	default:
		response.Internal(c, err, "Internal error")
	}
}

func (h *Handler) ListCategorias(c *gin.Context) {
	cats, err := h.svc.Categorias(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categorias": cats})
}

func (h *Handler) CreateCategoria(c *gin.Context) {
	req, ok := bind[CategoriaRequest](c)
	if !ok {
		return
	}
	cat := &domain.Categoria{Nombre: req.Nombre, Estado: domain.CategoryStatus(req.Estado)}
	if err := h.svc.SaveCategoria(c.Request.Context(), cat); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"categoria": cat})
}

func (h *Handler) UpdateCategoria(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bind[CategoriaRequest](c)
	if !ok {
		return
	}
	cat := &domain.Categoria{ID: id, Nombre: req.Nombre, Estado: domain.CategoryStatus(req.Estado)}
	if err := h.svc.SaveCategoria(c.Request.Context(), cat); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categoria": cat})
}

func (h *Handler) DeleteCategoria(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategoria(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Categoría eliminada"})
}

func (h *Handler) ListSubcategorias(c *gin.Context) {
	subs, cats, err := h.svc.Subcategorias(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	views := make([]SubcategoriaView, 0, len(subs))
	for _, s := range subs {
		views = append(views, toSubView(s))
	}
	refs := make([]CategoriaRef, 0, len(cats))
	for _, cat := range cats {
		refs = append(refs, CategoriaRef{ID: cat.ID, Nombre: cat.Nombre})
	}
	response.Success(c, http.StatusOK, gin.H{"subcategorias": views, "categorias": refs})
}

func (h *Handler) saveSub(c *gin.Context, id int64, status int) {
	req, ok := bind[SubcategoriaRequest](c)
	if !ok {
		return
	}
	sub := &domain.Subcategoria{ID: id, Nombre: req.Nombre, CategoriaID: req.CategoriaID, Estado: domain.CategoryStatus(req.Estado)}
	if err := h.svc.SaveSubcategoria(c.Request.Context(), sub); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, status, gin.H{"subcategoria": sub})
}

func (h *Handler) CreateSubcategoria(c *gin.Context) {
	h.saveSub(c, 0, http.StatusCreated)
}

func (h *Handler) UpdateSubcategoria(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	h.saveSub(c, id, http.StatusOK)
}

func (h *Handler) DeleteSubcategoria(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSubcategoria(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Subcategoría eliminada"})
}
