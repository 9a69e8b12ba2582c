package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
)

// ImageHandler exposes the recipe image catalog.
type ImageHandler struct {
	catalog *images.Catalog
}

func NewImageHandler(catalog *images.Catalog) *ImageHandler {
	return &ImageHandler{catalog: catalog}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	imgs := router.Group("/images")
	{
		imgs.GET("/resolve", h.Resolve)
		imgs.GET("/random", h.Random)
		imgs.GET("/categories", h.ListCategories)
		imgs.GET("/categories/:category", h.CategoryImages)
	}
}

// Resolve maps ?q= to an image. ?index= picks among the category's images.
func (h *ImageHandler) Resolve(c *gin.Context) {
	q := c.Query("q")
	resp := gin.H{"query": q, "image": h.catalog.Resolve(q, queryInt(c, "index", 0))}
	if cat, ok := h.catalog.Match(q); ok {
		resp["category"] = cat
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ImageHandler) Random(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"image": h.catalog.RandomImage(images.Category(c.Query("category")))})
}

func (h *ImageHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": images.Categories})
}

func (h *ImageHandler) CategoryImages(c *gin.Context) {
	cat := images.Category(c.Param("category"))
	imgs := h.catalog.ImagesByCategory(cat)
	if imgs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "images": imgs, "keywords": h.catalog.Keywords(cat)})
}
