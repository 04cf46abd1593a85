package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"comanda-pos/internal/order"
	"comanda-pos/internal/queue"
	"comanda-pos/internal/repository"
)

// POSHandler drives the order lifecycle of a table: draft cart edits, the
// consolidated tab, submission (draft -> tickets) and settlement. The draft
// cart lives in the cart store keyed by (restaurant, user); tickets live in
// MySQL and are the only durable state.
type POSHandler struct {
	Tables   *repository.TableRepo
	Products *repository.ProductRepo
	Tickets  *repository.TicketRepo
	Carts    repository.CartStore
	Hub      *queue.Hub
}

func NewPOSHandler(tables *repository.TableRepo, products *repository.ProductRepo, tickets *repository.TicketRepo, carts repository.CartStore, hub *queue.Hub) *POSHandler {
	return &POSHandler{Tables: tables, Products: products, Tickets: tickets, Carts: carts, Hub: hub}
}

// ----- DTOs -----

type addItemReq struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type submitReq struct {
	SubmissionKey string `json:"submission_key"`
}

type paymentReq struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
}

type settleReq struct {
	Payments []paymentReq `json:"payments"`
}

// SelectTable opens a table on the terminal: the user's draft cart is reset
// to an empty cart bound to that table. Draft items from a previously
// selected table are discarded, matching the one-cart-per-terminal model.
func (h *POSHandler) SelectTable(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tables.GetByID(ctx, rid, tableID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cart := order.NewCart(tableID)
	if err := h.Carts.Save(ctx, rid, uid, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save cart failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// AddItem puts a product into the draft cart, snapshotting its current
// name, price and destination. Adding an item to a table that is not the
// cart's current table implicitly selects that table with a fresh cart.
func (h *POSHandler) AddItem(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}

	var req addItemReq
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, rid, req.ProductID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cart, ok, err := h.Carts.Get(ctx, rid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	if !ok || cart.TableID != tableID {
		cart = order.NewCart(tableID)
	}
	cart.Add(order.CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		PriceCents:  p.PriceCents,
		Quantity:    req.Quantity,
		Destination: p.Destination,
	})
	if err := h.Carts.Save(ctx, rid, uid, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save cart failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// RemoveItem decrements one unit of a product from the draft cart; the line
// disappears when its quantity reaches zero. Items already submitted are
// not affected, they belong to tickets.
func (h *POSHandler) RemoveItem(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cart, found, err := h.Carts.Get(ctx, rid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	if !found || cart.TableID != tableID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no draft for table"})
	}
	cart.Remove(productID)
	if err := h.Carts.Save(ctx, rid, uid, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save cart failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": cart})
}

// Tab returns the consolidated bill of a table: the terminal's draft plus
// every open ticket, oldest wave first, with the running grand total.
func (h *POSHandler) Tab(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cart, found, err := h.Carts.Get(ctx, rid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	if !found || cart.TableID != tableID {
		cart = order.NewCart(tableID)
	}

	open, err := h.Tickets.ListOpenByTable(ctx, rid, tableID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tab": order.BuildTab(tableID, cart, open)})
}

// Submit turns the draft cart into tickets, one per destination with items
// for it, inside a single transaction: either every wave of the submission
// lands or none does. A submission_key makes retries idempotent; replaying
// a key returns the tickets created the first time instead of duplicating
// them. On success the draft is cleared and a ticket.created event goes out
// per ticket.
func (h *POSHandler) Submit(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}

	var req submitReq
	_ = c.Bind(&req) // empty body is fine, the key is optional
	key := strings.TrimSpace(req.SubmissionKey)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if key != "" {
		prior, err := h.Tickets.ListBySubmissionKey(ctx, rid, key)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if len(prior) > 0 {
			return c.JSON(http.StatusOK, echo.Map{"submission_key": key, "tickets": prior, "replayed": true})
		}
	} else {
		key = uuid.NewString()
	}

	cart, found, err := h.Carts.Get(ctx, rid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	if !found || cart.TableID != tableID || cart.Empty() {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "nothing to submit"})
	}

	tickets := order.Partition(cart)
	if len(tickets) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "nothing to submit"})
	}

	tx, err := h.Tickets.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, t := range tickets {
		t.RestaurantID = rid
		t.SubmissionKey = key
		if err := h.Tickets.CreateTx(ctx, tx, t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// The draft is spent; a failed clear only risks a double submit, which
	// the submission key absorbs.
	_ = h.Carts.Clear(ctx, rid, uid)

	for _, t := range tickets {
		emitTicketEvent(h.Hub, queue.TicketEvent{
			Event:        queue.EventTicketCreated,
			RestaurantID: rid,
			TicketID:     t.ID,
			TableID:      tableID,
			Destination:  t.Destination,
			Status:       t.Status,
			TotalCents:   t.SubtotalCents,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"submission_key": key, "tickets": tickets})
}

// Settle closes the table: every open ticket is re-read under a row lock,
// the total is checked against the tendered payments, and all tickets are
// closed in one transaction with the payment breakdown attached to each.
// Draft items never submitted are reported back as not charged and stay in
// the cart.
func (h *POSHandler) Settle(c echo.Context) error {
	rid, uid, tableID, ok := h.scope(c)
	if !ok {
		return nil
	}

	var req settleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	payments := make([]order.Payment, 0, len(req.Payments))
	for _, p := range req.Payments {
		payments = append(payments, order.Payment{Method: strings.TrimSpace(p.Method), AmountCents: p.AmountCents})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	cart, found, err := h.Carts.Get(ctx, rid, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cart failed"})
	}
	if !found || cart.TableID != tableID {
		cart = order.NewCart(tableID)
	}

	tx, err := h.Tickets.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Row locks keep a concurrent submit or status change from slipping a
	// ticket past the settlement between read and close.
	open, err := h.Tickets.ListOpenByTableForUpdateTx(ctx, tx, rid, tableID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	settlement, err := order.Settle(open, payments, cart)
	if err != nil {
		var short *order.InsufficientPaymentError
		switch {
		case errors.As(err, &short):
			return c.JSON(http.StatusPaymentRequired, echo.Map{
				"error":       "insufficient payment",
				"total_cents": short.TotalCents,
				"paid_cents":  short.PaidCents,
				"owed_cents":  short.OwedCents(),
			})
		case errors.Is(err, order.ErrNothingToSettle):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no open tickets to settle"})
		case errors.Is(err, order.ErrInvalidPayment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payments"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settle failed"})
		}
	}

	ids := make([]uint64, 0, len(open))
	for _, t := range open {
		ids = append(ids, t.ID)
	}
	if err := h.Tickets.CloseTicketsTx(ctx, tx, ids, payments, time.Now().UTC()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close tickets failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	emitTicketEvent(h.Hub, queue.TicketEvent{
		Event:        queue.EventTableSettled,
		RestaurantID: rid,
		TableID:      tableID,
		TotalCents:   settlement.TotalCents,
	})

	return c.JSON(http.StatusOK, echo.Map{"settlement": settlement})
}

// scope pulls the tenant, the acting user and the :id table parameter out
// of the request. When any is missing the error response has already been
// written and ok is false.
func (h *POSHandler) scope(c echo.Context) (rid, uid, tableID uint64, ok bool) {
	rid, err := getRestaurantID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return 0, 0, 0, false
	}
	uid, err = getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return 0, 0, 0, false
	}
	tableID, valid := pathID(c, "id")
	if !valid {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
		return 0, 0, 0, false
	}
	return rid, uid, tableID, true
}
