package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jandervidros/internal/dto"
	"jandervidros/internal/service"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List godoc
// @Summary      List products
// @Description  Every product, newest first, each with its lowStock flag.
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.DataResponse
// @Failure      500  {object}  apierror.APIError
// @Router       /api/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	respondList(c, items, err, "Product")
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, dto.Data(resp))
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ProductRequest  true  "name and quantity are required"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  apierror.APIError
// @Router       /api/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Product")
		return
	}
	c.JSON(http.StatusCreated, dto.Created("Product created successfully", id))
}

// Update replaces every field of the product.
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req); err != nil {
		respondError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Product updated successfully"))
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, dto.Message("Product deleted successfully"))
}

func (h *ProductsHandler) ByCategory(c *gin.Context) {
	items, err := h.svc.ListByCategory(c.Request.Context(), c.Param("category"))
	respondList(c, items, err, "Product")
}

// LowStock godoc
// @Summary      Low-stock products
// @Description  quantity <= minStock, or quantity <= 1, ordered by quantity.
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.DataResponse
// @Router       /api/products/low-stock [get]
func (h *ProductsHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	respondList(c, items, err, "Product")
}

func (h *ProductsHandler) Search(c *gin.Context) {
	items, err := h.svc.Search(c.Request.Context(), c.Param("term"))
	respondList(c, items, err, "Product")
}
