package reservation

import (
	"net/http"
	"strconv"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/response"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the reservation pages on the admin dashboard group.
func (h *Handler) RegisterRoutes(dashboard *gin.RouterGroup) {
	g := dashboard.Group("/reservas")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/estado", h.UpdateStatus)
}

// List returns the page props for one status view, or for every
// reservation when no estado is given.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows   []domain.Reserva
		status domain.ReservaStatus
		err    error
	)
	if raw := c.Query("estado"); raw != "" {
		status, err = domain.ParseReservaStatus(raw)
		if err != nil {
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATUS", "Estado de reserva no válido")
			return
		}
		rows, err = h.svc.ListByStatus(ctx, status)
	} else {
		rows, err = h.svc.ListAll(ctx)
	}
	if err != nil {
		response.Internal(c, err, "Failed to load reservations")
		return
	}

	counts, err := h.svc.Counts(ctx)
	if err != nil {
		response.Internal(c, err, "Failed to load reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"estado":   status,
		"reservas": ToViews(rows),
		"total":    len(rows),
		"conteos":  counts,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReservaNotFound) {
			response.Error(c, http.StatusNotFound, "RESERVA_NOT_FOUND", "Reserva no encontrada")
			return
		}
		response.Internal(c, err, "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reserva": ToView(r)})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	next, err := domain.ParseReservaStatus(req.Estado)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "INVALID_STATUS", MsgStatusFailed,
			map[string]string{"estado": "Estado de reserva no válido"})
		return
	}

	updated, err := h.svc.SetStatus(c.Request.Context(), id, next)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservaNotFound):
			response.Error(c, http.StatusNotFound, "RESERVA_NOT_FOUND", "Reserva no encontrada")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", MsgStatusFailed)
		case errors.Is(err, ErrStatusConflict):
			response.Error(c, http.StatusConflict, "STATUS_CONFLICT", MsgStatusFailed)
		default:
			response.Internal(c, err, MsgStatusFailed)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reserva": ToView(updated),
		"message": MsgStatusUpdated,
	})
}
