package admin

import (
	"net/http"

	"motopartes/internal/domain"
	"motopartes/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsResponse struct {
	TotalClientes      int64                          `json:"total_clientes"`
	TotalReservas      int64                          `json:"total_reservas"`
	Reservas           map[domain.ReservaStatus]int64 `json:"reservas"`
	ReservasPendientes int64                          `json:"reservas_pendientes"`
	FacturasPendientes int64                          `json:"facturas_pendientes"`
	TotalProductos     int                            `json:"total_productos"`
	ProductosAgotados  int                            `json:"productos_agotados"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(dashboard *gin.RouterGroup) {
	dashboard.GET("/stats", h.GetStats)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}
