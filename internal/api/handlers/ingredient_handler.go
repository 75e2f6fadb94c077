package handlers

import (
	"net/http"
	"strings"

	"github.com/avelinebakes/backoffice/backend-go/internal/catalog"
	"github.com/avelinebakes/backoffice/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	service     *service.ForecastService
	categorizer *catalog.Categorizer
}

func NewIngredientHandler(service *service.ForecastService, categorizer *catalog.Categorizer) *IngredientHandler {
	if categorizer == nil {
		categorizer = catalog.NewDefaultCategorizer()
	}
	return &IngredientHandler{service: service, categorizer: categorizer}
}

func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.service.Ingredients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.categorizer.Categories()})
}

type categorizeRequest struct {
	Category string `json:"category"`
}

// Categorize assigns a category to an ingredient. With an empty body
// the category is derived from the ingredient name.
func (h *IngredientHandler) Categorize(c *gin.Context) {
	ingredientID := c.Param("id")

	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		ingredients, err := h.service.Ingredients(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients", "details": err.Error()})
			return
		}

		for _, ing := range ingredients {
			if ing.ID == ingredientID {
				category = h.categorizer.Categorize(ing.Name)
				break
			}
		}
		if category == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
	}

	if err := h.service.CategorizeIngredient(c.Request.Context(), ingredientID, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient_id": ingredientID,
		"category":      category,
	})
}
