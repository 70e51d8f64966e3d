package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/domain"
	"github.com/gulu-app/restock-service/internal/service"
)

type ListHandler struct {
	listService *service.ListService
	logger      *zap.Logger
}

func NewListHandler(listService *service.ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		logger:      logger,
	}
}

func (h *ListHandler) CreateList(c *gin.Context) {
	var req domain.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	list, err := h.listService.CreateList(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrListNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "List name is required",
			})
			return
		}

		h.logger.Error("Failed to create list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create list",
		})
		return
	}

	c.JSON(http.StatusCreated, list)
}

// GetLists returns the filtered, sorted list view. Defaults match the
// initial display: newest first.
func (h *ListHandler) GetLists(c *gin.Context) {
	sortKey, err := domain.ParseListSortKey(c.Query("sort_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := domain.ParseSortDirection(c.Query("order"), domain.SortDesc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lists := domain.FilterSortLists(h.listService.Lists(), c.Query("q"), sortKey, dir)
	c.JSON(http.StatusOK, gin.H{
		"lists": lists,
		"count": len(lists),
	})
}

func (h *ListHandler) GetList(c *gin.Context) {
	list, err := h.listService.GetList(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "List not found",
		})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ListHandler) DeleteList(c *gin.Context) {
	if err := h.listService.DeleteList(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("Failed to delete list",
			zap.String("list_id", c.Param("id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete list",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProducts returns the sorted product view of one list, partitioned into
// in-stock and out-of-stock groups. Defaults: status ascending, so open
// items come first.
func (h *ListHandler) GetProducts(c *gin.Context) {
	sortKey, err := domain.ParseProductSortKey(c.Query("sort_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := domain.ParseSortDirection(c.Query("order"), domain.SortAsc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.listService.GetList(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "List not found",
		})
		return
	}

	sorted := domain.FilterSortProducts(list.Products, c.Query("q"), sortKey, dir)
	inStock, outOfStock := domain.PartitionByStock(sorted)
	c.JSON(http.StatusOK, domain.ProductGroupsResponse{
		InStock:    inStock,
		OutOfStock: outOfStock,
	})
}

// ResetList zeroes quantities and completion on every product in the list.
func (h *ListHandler) ResetList(c *gin.Context) {
	list, err := h.listService.ResetAll(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "List not found",
			})
			return
		}

		h.logger.Error("Failed to reset list",
			zap.String("list_id", c.Param("id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset list",
		})
		return
	}
	c.JSON(http.StatusOK, list)
}
