package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

type AppointmentsHandler struct{ svc service.AppointmentService }

func NewAppointmentsHandler(svc service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc}
}

func (h *AppointmentsHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	respondList(c, items, err, "Appointment")
}

func (h *AppointmentsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req dto.AppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Appointment created successfully", id))
}

func (h *AppointmentsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Appointment")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Appointment deleted successfully"))
}
