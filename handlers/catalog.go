package handlers

import (
	"net/http"
	"strconv"

	pitchRepo "pitchbook/database/repository/pitch"
	productRepo "pitchbook/database/repository/product"
	"pitchbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the read-only product and pitch endpoints.
type CatalogHandler struct {
	products productRepo.ProductRepository
	pitches  pitchRepo.PitchRepository
}

func NewCatalogHandler(products productRepo.ProductRepository, pitches pitchRepo.PitchRepository) *CatalogHandler {
	return &CatalogHandler{products: products, pitches: pitches}
}

// GetAllProducts handles GET /api/products.
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.products.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list products", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list products", err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetTopSellingProducts handles GET /api/products/top?limit=N.
func (h *CatalogHandler) GetTopSellingProducts(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	products, err := h.products.GetTopSelling(limit)
	if err != nil {
		utils.GetLogger().Error("Failed to list top selling products", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list top selling products", err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetAllPitches handles GET /api/pitches.
func (h *CatalogHandler) GetAllPitches(c *gin.Context) {
	pitches, err := h.pitches.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list pitches", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list pitches", err.Error())
		return
	}
	c.JSON(http.StatusOK, pitches)
}
