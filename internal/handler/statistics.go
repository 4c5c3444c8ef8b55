package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

type StatisticsHandler struct{ svc service.StatisticsService }

func NewStatisticsHandler(svc service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

// Statistics godoc
// @Summary      Inventory statistics
// @Description  Product count, Σ quantity × price and low-stock count, computed on every call.
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  dto.DataResponse
// @Failure      500  {object}  apierror.APIError
// @Router       /api/statistics [get]
func (h *StatisticsHandler) Statistics(c *gin.Context) {
	resp, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Statistics")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}
