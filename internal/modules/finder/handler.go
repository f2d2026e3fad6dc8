package finder

import (
	"fmt"
	"net/http"

	"motopartes/internal/pkg/response"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderVisitorID = "X-Visitor-ID"
	CookieVisitorID = "visitor_id"
	visitorMaxAge   = 365 * 24 * 60 * 60
)

type SearchRequest struct {
	Year  int    `json:"year"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/moto-finder")
	g.GET("/options", h.Options)
	g.GET("/models", h.Models)
	g.GET("/recent", h.Recent)
	g.POST("/search", h.Search)
}

// visitorID identifies an anonymous visitor by header or cookie, issuing
// a new id when neither is present.
func visitorID(c *gin.Context) string {
	if id := c.GetHeader(HeaderVisitorID); id != "" {
		return id
	}
	if id, err := c.Cookie(CookieVisitorID); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(CookieVisitorID, id, visitorMaxAge, "/", "", false, true)
	c.Header(HeaderVisitorID, id)
	return id
}

func (h *Handler) Options(c *gin.Context) {
	opts, err := h.svc.Options(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load finder options")
		return
	}
	response.Success(c, http.StatusOK, opts)
}

func (h *Handler) Models(c *gin.Context) {
	models, err := h.svc.Models(c.Request.Context(), c.Query("brand"))
	if err != nil {
		response.Internal(c, err, "Failed to load models")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"models": models})
}

func (h *Handler) Recent(c *gin.Context) {
	list, err := h.svc.Recent(c.Request.Context(), visitorID(c))
	if err != nil {
		response.Internal(c, err, "Failed to load recent searches")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recent": list})
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	q := Search{Year: req.Year, Brand: req.Brand, Model: req.Model}
	recent, err := h.svc.Search(c.Request.Context(), visitorID(c), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrIncompleteSearch):
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "INCOMPLETE_SEARCH", MsgIncompleteTitle,
				gin.H{"description": MsgIncompleteBody})
		case errors.Is(err, ErrUnknownOption):
			response.Error(c, http.StatusUnprocessableEntity, "UNKNOWN_OPTION", "La moto seleccionada no está en el catálogo")
		default:
			response.Internal(c, err, "Failed to search")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"redirect": q.RedirectURL(),
		"message":  fmt.Sprintf("Localizando componentes para tu %s %s %d", q.Brand, q.Model, q.Year),
		"recent":   recent,
	})
}
