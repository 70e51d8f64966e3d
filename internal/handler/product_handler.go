package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/domain"
	"github.com/gulu-app/restock-service/internal/service"
)

type ProductHandler struct {
	listService *service.ListService
	logger      *zap.Logger
}

func NewProductHandler(listService *service.ListService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		listService: listService,
		logger:      logger,
	}
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req domain.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	list, err := h.listService.AddProduct(c.Request.Context(), c.Param("id"), req.Name, req.ImageURL, req.Comment)
	if err != nil {
		h.respondError(c, err, "Failed to add product")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	upd := domain.ProductUpdate{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Comment:  req.Comment,
	}
	list, err := h.listService.UpdateProduct(c.Request.Context(), c.Param("id"), c.Param("productId"), upd)
	if err != nil {
		h.respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	list, err := h.listService.DeleteProduct(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		h.respondError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) ToggleCompletion(c *gin.Context) {
	list, err := h.listService.ToggleCompletion(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		h.respondError(c, err, "Failed to toggle completion")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) ToggleOutOfStock(c *gin.Context) {
	list, err := h.listService.ToggleOutOfStock(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		h.respondError(c, err, "Failed to toggle out-of-stock")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) AdjustQuantity(c *gin.Context) {
	var req domain.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	list, err := h.listService.AdjustQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"), req.Delta)
	if err != nil {
		h.respondError(c, err, "Failed to adjust quantity")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) ResetQuantity(c *gin.Context) {
	list, err := h.listService.ResetQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		h.respondError(c, err, "Failed to reset quantity")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, service.ErrProductNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
	default:
		h.logger.Error(fallback,
			zap.String("list_id", c.Param("id")),
			zap.String("product_id", c.Param("productId")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
