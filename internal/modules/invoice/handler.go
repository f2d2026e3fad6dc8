package invoice

import (
	"net/http"
	"strconv"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/display"
	"motopartes/internal/pkg/response"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

const (
	MsgAnnulled     = "Factura anulada correctamente"
	MsgAnnulFailed  = "No se pudo anular la factura"
	msgNotFound     = "Factura no encontrada"
	msgInvalidState = "Estado de factura no válido"
)

type FacturaView struct {
	ID           int64  `json:"id"`
	Numero       string `json:"numero"`
	ReservaID    *int64 `json:"reserva_id"`
	Cliente      string `json:"cliente"`
	Total        string `json:"total"`
	TotalLabel   string `json:"total_formateado"`
	Estado       string `json:"estado"`
	EstadoLabel  string `json:"estado_label"`
	FechaEmision string `json:"fecha_emision"`
	Anulable     bool   `json:"anulable"`
}

func ToView(f *domain.Factura) FacturaView {
	return FacturaView{
		ID:           f.ID,
		Numero:       f.Numero,
		ReservaID:    f.ReservaID,
		Cliente:      f.Cliente,
		Total:        f.Total.StringFixed(2),
		TotalLabel:   display.Money(f.Total),
		Estado:       string(f.Estado),
		EstadoLabel:  display.Capitalize(string(f.Estado)),
		FechaEmision: display.Timestamp(f.FechaEmision),
		Anulable:     f.Estado.CanAnnul(),
	}
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(dashboard *gin.RouterGroup) {
	g := dashboard.Group("/facturas")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/anular", h.Annul)
}

func (h *Handler) List(c *gin.Context) {
	status := domain.FacturaStatus(c.Query("estado"))
	list, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATUS", msgInvalidState)
			return
		}
		response.Internal(c, err, "Failed to load invoices")
		return
	}

	views := make([]FacturaView, 0, len(list))
	for i := range list {
		views = append(views, ToView(&list[i]))
	}
	response.Success(c, http.StatusOK, gin.H{
		"estado":   status,
		"facturas": views,
		"total":    len(views),
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFacturaNotFound) {
			response.Error(c, http.StatusNotFound, "FACTURA_NOT_FOUND", msgNotFound)
			return
		}
		response.Internal(c, err, "Failed to load invoice")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"factura": ToView(f)})
}

func (h *Handler) Annul(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.svc.Annul(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFacturaNotFound):
			response.Error(c, http.StatusNotFound, "FACTURA_NOT_FOUND", msgNotFound)
		case errors.Is(err, ErrNotAnnullable):
			_ = c.Error(err)
			response.Error(c, http.StatusConflict, "FACTURA_NOT_ANNULLABLE", MsgAnnulFailed)
		default:
			response.Internal(c, err, MsgAnnulFailed)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"factura": ToView(f), "message": MsgAnnulled})
}
