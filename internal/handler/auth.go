package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary      Exchange the back-office login for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "credentials"
// @Success      200   {object}  dto.DataResponse
// @Failure      401   {object}  apierror.APIError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Credential")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

func (h *AuthHandler) ChangeCredentials(c *gin.Context) {
	var req dto.ChangeCredentialsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangeCredentials(c.Request.Context(), req); err != nil {
		respondError(c, err, "Credential")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Credentials updated successfully"))
}
