package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"comanda-pos/internal/model"
	"comanda-pos/internal/order"
	"comanda-pos/internal/repository"
)

// ProductHandler serves the menu catalog.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(products *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: products}
}

type createProductReq struct {
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Destination string `json:"destination"`
}

type productResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Destination string `json:"destination"`
}

// List returns the restaurant's catalog. The route sits behind the response
// cache; the catalog changes rarely compared to how often terminals load it.
func (h *ProductHandler) List(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Products.ListByRestaurant(ctx, rid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]productResp, 0, len(items))
	for _, p := range items {
		out = append(out, productResp{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents, Category: p.Category, Stock: p.Stock, Destination: p.Destination})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": out})
}

// Create adds a product (OWNER only). Destination defaults to the kitchen
// when omitted; it decides which prep station receives the item at
// submission time.
func (h *ProductHandler) Create(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
	}
	dest := strings.ToLower(strings.TrimSpace(req.Destination))
	if dest == "" {
		dest = order.DestinationKitchen
	}
	if !order.ValidDestination(dest) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination must be kitchen or bar"})
	}
	if req.Category == "" {
		req.Category = "General"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Product{
		RestaurantID: rid,
		Name:         req.Name,
		PriceCents:   req.PriceCents,
		Category:     req.Category,
		Stock:        req.Stock,
		Destination:  dest,
	}
	if err := h.Products.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"product": productResp{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents, Category: p.Category, Stock: p.Stock, Destination: p.Destination},
	})
}
