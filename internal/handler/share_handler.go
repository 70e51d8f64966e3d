package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/codec"
	"github.com/gulu-app/restock-service/internal/domain"
	"github.com/gulu-app/restock-service/internal/service"
)

// ShareHandler covers moving lists in and out of the store: share-code
// export/import and CSV import.
type ShareHandler struct {
	listService *service.ListService
	logger      *zap.Logger
}

func NewShareHandler(listService *service.ListService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		listService: listService,
		logger:      logger,
	}
}

func (h *ShareHandler) ShareList(c *gin.Context) {
	code, err := h.listService.ShareCode(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "List not found",
			})
			return
		}

		h.logger.Error("Failed to encode share code",
			zap.String("list_id", c.Param("id")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to encode share code",
		})
		return
	}
	c.JSON(http.StatusOK, domain.ShareCodeResponse{Code: code})
}

func (h *ShareHandler) ImportShareCode(c *gin.Context) {
	var req domain.ImportCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	list, err := h.listService.ImportShareCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, codec.ErrInvalidShareCode) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid share code. Please check the code and try again.",
			})
			return
		}

		h.logger.Error("Failed to import share code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to import share code",
		})
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *ShareHandler) ImportCSV(c *gin.Context) {
	var req domain.ImportCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	list, err := h.listService.ImportCSV(c.Request.Context(), req.Content)
	if err != nil {
		if errors.Is(err, codec.ErrEmptyCSV) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}

		h.logger.Error("Failed to import CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to import CSV",
		})
		return
	}
	c.JSON(http.StatusCreated, list)
}
