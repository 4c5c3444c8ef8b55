package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jandervidros/internal/apierror"
	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

// ServicesHandler serves the service-order (client job) endpoints.
type ServicesHandler struct {
	svc      service.ServiceOrderService
	receipts service.ReceiptService
}

func NewServicesHandler(svc service.ServiceOrderService, receipts service.ReceiptService) *ServicesHandler {
	return &ServicesHandler{svc: svc, receipts: receipts}
}

func (h *ServicesHandler) List(c *gin.Context) {
	var filter dto.ServiceOrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	respondList(c, items, err, "Service")
}

func (h *ServicesHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Service")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

func (h *ServicesHandler) Create(c *gin.Context) {
	var req dto.ServiceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Service")
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Service created successfully", id))
}

func (h *ServicesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ServiceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err, "Service")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Service updated successfully"))
}

func (h *ServicesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Service")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Service deleted successfully"))
}

// ToggleStatus godoc
// @Summary      Flip a service between Pending and Completed
// @Tags         services
// @Produce      json
// @Param        id   path      int  true  "service id"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  apierror.APIError
// @Router       /api/services/{id}/toggle-status [patch]
func (h *ServicesHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, err := h.svc.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Service")
		return
	}
	c.JSON(http.StatusOK, dto.Data(gin.H{"id": id, "status": status}))
}

func (h *ServicesHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.receipts.ServiceReceipt(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err, "Service")
		return
	}
	sendPDF(c, fmt.Sprintf("service_%d.pdf", id), buf.Bytes())
}
