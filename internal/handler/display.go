package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"comanda-pos/internal/order"
	"comanda-pos/internal/queue"
	"comanda-pos/internal/repository"
)

// DisplayHandler serves the prep station monitors. The kitchen sees tickets
// it still has to act on (pending, cooking); the bar also keeps ready
// tickets on screen until they are picked up. Both poll the snapshot
// endpoints and ride the SSE stream for pushes in between.
type DisplayHandler struct {
	Tickets *repository.TicketRepo
	Hub     *queue.Hub
}

func NewDisplayHandler(tickets *repository.TicketRepo, hub *queue.Hub) *DisplayHandler {
	return &DisplayHandler{Tickets: tickets, Hub: hub}
}

type statusReq struct {
	Status string `json:"status"`
}

// Kitchen returns the kitchen queue, oldest ticket first.
func (h *DisplayHandler) Kitchen(c echo.Context) error {
	return h.queueSnapshot(c, order.DestinationKitchen, order.KitchenQueueStatuses)
}

// Bar returns the bar queue, oldest ticket first.
func (h *DisplayHandler) Bar(c echo.Context) error {
	return h.queueSnapshot(c, order.DestinationBar, order.BarQueueStatuses)
}

func (h *DisplayHandler) queueSnapshot(c echo.Context, destination string, statuses []string) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListQueue(ctx, rid, destination, statuses)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"destination": destination, "tickets": tickets})
}

// UpdateStatus advances a ticket along its lifecycle. Transitions only move
// forward and the UPDATE is guarded by the allowed source statuses, so two
// stations racing on the same ticket cannot move it backwards; the loser
// gets a conflict.
func (h *DisplayHandler) UpdateStatus(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	to := strings.ToLower(strings.TrimSpace(req.Status))
	if !order.ValidStatus(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, rid, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !order.CanTransition(t.Destination, t.Status, to) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": fmt.Sprintf("cannot move %s ticket from %s to %s", t.Destination, t.Status, to),
		})
	}

	moved, err := h.Tickets.UpdateStatusGuarded(ctx, rid, id, to, order.TransitionSources(t.Destination, to))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !moved {
		// Someone advanced or settled the ticket between our read and write.
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket changed concurrently"})
	}
	t.Status = to

	emitTicketEvent(h.Hub, queue.TicketEvent{
		Event:        queue.EventStatusChanged,
		RestaurantID: rid,
		TicketID:     t.ID,
		TableID:      t.TableID,
		Destination:  t.Destination,
		Status:       to,
		TotalCents:   t.SubtotalCents,
	})

	return c.JSON(http.StatusOK, echo.Map{"ticket": t})
}

// Stream pushes ticket events for the caller's restaurant as server-sent
// events. Monitors reconcile with a snapshot after every reconnect since
// the hub drops events for slow consumers instead of blocking publishers.
func (h *DisplayHandler) Stream(c echo.Context) error {
	rid, err := getRestaurantID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ch := h.Hub.Subscribe(rid)
	defer h.Hub.Unsubscribe(rid, ch)

	// Heartbeats keep proxies from closing an idle stream.
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case ev, open := <-ch:
			if !open {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, data)
			w.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			w.Flush()
		}
	}
}
