package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"comanda-pos/internal/model"
	"comanda-pos/internal/repository"
)

// TableHandler serves the floor plan. Occupancy is never stored; every list
// derives it from the tickets currently in an occupying status, so the view
// can never disagree with the tickets themselves.
type TableHandler struct {
	Tables  *repository.TableRepo
	Tickets *repository.TicketRepo
}

func NewTableHandler(tables *repository.TableRepo, tickets *repository.TicketRepo) *TableHandler {
	return &TableHandler{Tables: tables, Tickets: tickets}
}

type createTableReq struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type tableResp struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Occupied bool   `json:"occupied"`
}

// List returns all tables of the restaurant with their derived occupancy.
func (h *TableHandler) List(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Tables.ListByRestaurant(ctx, rid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	occupied, err := h.Tickets.OccupiedTableIDs(ctx, rid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]tableResp, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableResp{ID: t.ID, Name: t.Name, Capacity: t.Capacity, Occupied: occupied[t.ID]})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": out})
}

// Create adds a table to the floor plan (OWNER only). Table names are unique
// per restaurant.
func (h *TableHandler) Create(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Capacity <= 0 {
		req.Capacity = 4
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.DiningTable{RestaurantID: rid, Name: req.Name, Capacity: req.Capacity}
	if err := h.Tables.Create(ctx, &t); err != nil {
		if repository.IsDuplicateName(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"table": tableResp{ID: t.ID, Name: t.Name, Capacity: t.Capacity},
	})
}

// Delete removes a table (OWNER only). A table with open tickets cannot be
// removed; settle it first.
func (h *TableHandler) Delete(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	busy, err := h.Tickets.HasOccupying(ctx, rid, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if busy {
		return c.JSON(http.StatusConflict, echo.Map{"error": "table has open tickets"})
	}

	if err := h.Tables.Delete(ctx, rid, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete table failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
