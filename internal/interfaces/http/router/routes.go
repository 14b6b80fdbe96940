package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/interfaces/http/handler"
	"github.com/retail/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every API handler
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Stock      *handler.StockHandler
	Order      *handler.OrderHandler
	Attendance *handler.AttendanceHandler
	Report     *handler.ReportHandler
}

// Middleware is the per-route middleware the API needs
type Middleware struct {
	// Auth rejects requests without a valid access token
	Auth gin.HandlerFunc
	// Idempotency guards order creation against replays
	Idempotency gin.HandlerFunc
}

// DomainGroups builds the route table of the retail API
func DomainGroups(h Handlers, mw Middleware) []RouteRegistrar {
	managers := middleware.RequireRole(string(identity.RoleAdmin), string(identity.RoleManager))

	health := NewDomainGroup("health", "/health").
		GET("", h.Health.Check)

	auth := NewDomainGroup("auth", "/auth").
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh).
		POST("/logout", mw.Auth, h.Auth.Logout)

	users := NewDomainGroup("users", "/users").
		Use(mw.Auth, managers).
		GET("", h.User.List).
		GET("/:id", h.User.GetByID)

	products := NewDomainGroup("products", "/products").
		Use(mw.Auth).
		GET("", h.Product.List).
		GET("/active", h.Product.ListActive).
		GET("/available", h.Product.ListAvailable).
		GET("/category/:category", h.Product.ListByCategory).
		GET("/search", h.Product.Search).
		GET("/:id", h.Product.GetByID).
		POST("", managers, h.Product.Create).
		PUT("/:id", managers, h.Product.Update).
		PATCH("/:id/stock", managers, h.Product.UpdateStock).
		PATCH("/:id/deactivate", managers, h.Product.Deactivate).
		DELETE("/:id", managers, h.Product.Delete)

	stock := NewDomainGroup("stock", "/stock").
		Use(mw.Auth).
		GET("", h.Stock.List).
		GET("/low-stock", h.Stock.ListLowStock).
		GET("/product/:productId", h.Stock.GetByProductID).
		PUT("/product/:productId", managers, h.Stock.SetQuantity).
		POST("/product/:productId/increase", managers, h.Stock.Increase).
		POST("/product/:productId/decrease", managers, h.Stock.Decrease)

	orders := NewDomainGroup("orders", "/orders").
		Use(mw.Auth).
		GET("", h.Order.List).
		GET("/:id", h.Order.GetByID).
		POST("", mw.Idempotency, h.Order.Create)

	attendance := NewDomainGroup("attendance", "/attendance").
		Use(mw.Auth).
		GET("", h.Attendance.List).
		GET("/:id", h.Attendance.GetByID).
		POST("/check-in", h.Attendance.CheckIn).
		PUT("/:id/check-out", h.Attendance.CheckOut).
		GET("/employee/:employeeId/today", h.Attendance.Today).
		DELETE("/:id", managers, h.Attendance.Delete)

	reports := NewDomainGroup("reports", "/reports").
		Use(mw.Auth).
		GET("/sales", h.Report.Sales).
		GET("/sales/summary", h.Report.SalesSummary).
		GET("/stock", h.Report.Stock).
		GET("/stock/latest", h.Report.LatestStock).
		GET("/attendance", h.Report.Attendance).
		GET("/attendance/summary", h.Report.AttendanceSummary)

	return []RouteRegistrar{health, auth, users, products, stock, orders, attendance, reports}
}
