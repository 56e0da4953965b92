package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"magicstore/internal/handler"
	"magicstore/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions *session.Manager,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/signup", authHandler.Signup)
	api.POST("/logout", authHandler.Logout)
	api.POST("/admin/login", authHandler.AdminLogin)
	api.GET("/courses", catalogHandler.ListCourses)
	api.GET("/courses/:id", catalogHandler.GetCourse)

	// Buyer routes (require a logged-in user session)
	api.POST("/orders", orderHandler.CreateOrder, sessions.RequireUser)
	api.POST("/orders/:id/upi", orderHandler.SubmitUPITransaction, sessions.RequireUser)
	api.POST("/orders/:id/card", orderHandler.SubmitCardPayment, sessions.RequireUser)
	api.GET("/orders/my", orderHandler.MyOrders, sessions.RequireUser)

	// Admin catalog CRUD
	api.POST("/courses", catalogHandler.CreateCourse, sessions.RequireAdmin)
	api.PUT("/courses/:id", catalogHandler.UpdateCourse, sessions.RequireAdmin)
	api.DELETE("/courses/:id", catalogHandler.DeleteCourse, sessions.RequireAdmin)

	// Admin panel routes
	admin := api.Group("/admin", sessions.RequireAdmin)
	admin.POST("/logout", authHandler.AdminLogout)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PUT("/orders/:id/status", adminHandler.SetOrderStatus)
	admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/settings", adminHandler.GetSettings)
	admin.PUT("/settings", adminHandler.UpdateSettings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
