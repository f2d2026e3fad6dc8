package catalog

import (
	"net/http"
	"strconv"

	"motopartes/internal/pkg/response"
	"motopartes/internal/pkg/validator"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *Service
	motos MotoOptionsSource
}

func NewHandler(svc *Service, motos MotoOptionsSource) *Handler {
	return &Handler{svc: svc, motos: motos}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Welcome)
	rg.GET("/productos", h.List)
	rg.GET("/productos/:id", h.Get)
	rg.GET("/productos/:id/imagen", h.Image)
}

// RegisterAdminRoutes takes the admin-guarded root group and the
// /dashboard group beneath it.
func (h *Handler) RegisterAdminRoutes(admin, dashboard *gin.RouterGroup) {
	admin.DELETE("/productos/:id", h.Delete)

	g := dashboard.Group("/productos")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) Welcome(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.svc.All(ctx)
	if err != nil {
		response.Internal(c, err, "Failed to load products")
		return
	}
	featured, err := h.svc.Featured(ctx)
	if err != nil {
		response.Internal(c, err, "Failed to load products")
		return
	}
	best, err := h.svc.BestSelling(ctx)
	if err != nil {
		response.Internal(c, err, "Failed to load products")
		return
	}
	motoData, err := h.motos.Options(ctx)
	if err != nil {
		response.Internal(c, err, "Failed to load finder options")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"featured_products":     ToViews(featured),
		"best_selling_products": ToViews(best),
		"all_products":          ToViews(all),
		"moto_data":             motoData,
	})
}

func (h *Handler) List(c *gin.Context) {
	q := c.Query("q")
	all, filtered, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err, "Failed to load products")
		return
	}
	response.Success(c, http.StatusOK, NewListProps(all, filtered, q))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Producto no encontrado")
			return
		}
		response.Internal(c, err, "Failed to load product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"producto": ToView(p)})
}

// Image resolves ?index= and, with ?direction=next|prev, steps the gallery.
func (h *Handler) Image(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	index := 0
	if raw := c.Query("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_INDEX", "index must be an integer")
			return
		}
		index = n
	}

	var dir *Direction
	if raw := c.Query("direction"); raw != "" {
		d, ok := ParseDirection(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_DIRECTION", "direction must be next or prev")
			return
		}
		dir = &d
	}

	res, err := h.svc.Image(c.Request.Context(), id, index, dir)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Producto no encontrado")
			return
		}
		response.Internal(c, err, "Failed to load product image")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) bindProduct(c *gin.Context) (ProductRequest, bool) {
	var req ProductRequest
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

func (h *Handler) writeMutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Producto no encontrado")
	case errors.Is(err, ErrCodeExists):
		response.Error(c, http.StatusConflict, "CODE_EXISTS", "Ya existe un producto con ese código")
	case errors.Is(err, ErrInvalidPrice):
		response.CustomError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", map[string]string{"precio": "min"})
	default:
		response.Internal(c, err, fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bindProduct(c)
	if !ok {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeMutationError(c, err, "Error al crear el producto")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"producto": ToView(p)})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := h.bindProduct(c)
	if !ok {
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeMutationError(c, err, "Error al actualizar el producto")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"producto": ToView(p)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", MsgDeleteFailed)
			return
		}
		response.Internal(c, err, MsgDeleteFailed)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": MsgDeleted})
}
