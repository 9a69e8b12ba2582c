package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/service"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

// UnitsHandler exposes the formatter for clients that render their own
// recipe data.
type UnitsHandler struct{}

func NewUnitsHandler() *UnitsHandler {
	return &UnitsHandler{}
}

func (h *UnitsHandler) RegisterRoutes(router *gin.RouterGroup) {
	u := router.Group("/units")
	{
		u.POST("/format", h.Format)
		u.POST("/parse", h.Parse)
	}
}

// Format renders canonical quantities for a locale. Only the parts present
// in the request are returned.
func (h *UnitsHandler) Format(c *gin.Context) {
	var req types.FormatRequest
	if !bindJSON(c, &req) {
		return
	}
	loc := requestLocale(c)
	if req.Locale != "" {
		loc = units.ParseLocale(req.Locale)
	}

	resp := gin.H{"locale": loc, "unitSystem": loc.System()}
	if len(req.Ingredients) > 0 {
		ings := make([]units.Ingredient, 0, len(req.Ingredients))
		for _, p := range req.Ingredients {
			ing, err := units.NewIngredient(p.Name, p.Amount, units.IngredientUnit(p.Unit), p.Price)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ings = append(ings, ing)
		}
		resp["ingredients"] = units.FormatIngredients(ings, loc)
	}
	if len(req.Instructions) > 0 {
		resp["instructions"] = units.LocalizeInstructions(req.Instructions, loc)
	}
	if req.CookMinutes != nil {
		resp["cookTime"] = units.FormatCookingTime(*req.CookMinutes, loc)
	}
	if req.PriceCents != nil {
		currency := req.Currency
		if currency == "" {
			currency = service.CurrencyFor(loc)
		}
		resp["price"] = units.FormatPrice(*req.PriceCents, loc, currency)
	}
	c.JSON(http.StatusOK, resp)
}

var canonicalUnit = map[units.Kind]string{
	units.KindWeight:      "g",
	units.KindVolume:      "ml",
	units.KindTemperature: "°C",
	units.KindLength:      "cm",
}

// Parse converts a display quantity back to canonical units.
func (h *UnitsHandler) Parse(c *gin.Context) {
	var req types.ParseQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	kind := units.Kind(req.Kind)
	value, err := units.ParseQuantity(req.Quantity, kind, req.Strict)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, units.ErrUnrecognizedUnit) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value, "unit": canonicalUnit[kind]})
}
