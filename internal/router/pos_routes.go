package router

import (
	"github.com/labstack/echo/v4"

	"comanda-pos/internal/handler"
	"comanda-pos/internal/middleware"
)

// RegisterPOS wires the terminal-facing routes: floor plan, catalog, draft
// cart, tab, submission, settlement, the prep station monitors and the
// event stream. Everything here is shared by OWNER and STAFF; the pass
// behind the counter is the role, not the endpoint.
//
// The catalog read sits behind the Redis response cache (catalogCache may
// be nil to disable it). Live surfaces like tabs, queues and the stream
// are never cached: a stale tab is a wrong bill.
func RegisterPOS(e *echo.Echo, pos *handler.POSHandler, tables *handler.TableHandler, products *handler.ProductHandler, displays *handler.DisplayHandler, jwtSecret string, catalogCache echo.MiddlewareFunc) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "STAFF"),
	)

	// Floor plan and catalog.
	g.GET("/tables", tables.List)
	if catalogCache != nil {
		g.GET("/products", products.List, catalogCache)
	} else {
		g.GET("/products", products.List)
	}

	// Order lifecycle of one table.
	g.POST("/pos/tables/:id/cart", pos.SelectTable)
	g.POST("/pos/tables/:id/cart/items", pos.AddItem)
	g.DELETE("/pos/tables/:id/cart/items/:productID", pos.RemoveItem)
	g.GET("/pos/tables/:id/tab", pos.Tab)
	g.POST("/pos/tables/:id/submit", pos.Submit)
	g.POST("/pos/tables/:id/settle", pos.Settle)

	// Prep station monitors.
	g.GET("/displays/kitchen", displays.Kitchen)
	g.GET("/displays/bar", displays.Bar)
	g.GET("/displays/stream", displays.Stream)
	g.POST("/tickets/:id/status", displays.UpdateStatus)
}

// RegisterOwner wires the management routes only an OWNER may call:
// editing the floor plan and the catalog, and creating staff accounts.
func RegisterOwner(e *echo.Echo, a *handler.AuthHandler, tables *handler.TableHandler, products *handler.ProductHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	g.POST("/tables", tables.Create)
	g.DELETE("/tables/:id", tables.Delete)
	g.POST("/products", products.Create)
	g.POST("/staff", a.CreateStaff)
}
