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

type TransactionsHandler struct {
	svc      service.TransactionService
	receipts service.ReceiptService
}

func NewTransactionsHandler(svc service.TransactionService, receipts service.ReceiptService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc, receipts: receipts}
}

// List godoc
// @Summary      List sales and purchases
// @Description  Newest first, each with its items ordered as entered.
// @Tags         transactions
// @Produce      json
// @Param        type  query     string  false  "sale | purchase"
// @Success      200   {object}  dto.DataResponse
// @Router       /api/transactions [get]
func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	respondList(c, items, err, "Transaction")
}

func (h *TransactionsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

// Create godoc
// @Summary      Record a sale or purchase
// @Description  Line totals and the total are computed server side; header and items are stored atomically.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTransactionRequest  true  "transaction"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  apierror.APIError
// @Router       /api/transactions [post]
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Transaction recorded successfully", id))
}

func (h *TransactionsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Transaction deleted successfully"))
}

// Receipt streams the printable PDF for one transaction.
func (h *TransactionsHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.receipts.TransactionReceipt(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err, "Transaction")
		return
	}
	sendPDF(c, fmt.Sprintf("transaction_%d.pdf", id), buf.Bytes())
}

func sendPDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}
