package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/pkg/authz"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/handlers"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Destructive
// routes sit behind the admin gate.
func Setup(facade handlers.OperationsFacade, gate authz.Gate, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	itemHandler := handlers.NewItemHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	fileHandler := handlers.NewFileHandler(facade)
	demoHandler := handlers.NewDemoHandler(facade)
	extractionHandler := handlers.NewExtractionHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	items := api.Group("/items")
	items.POST("/checkin", itemHandler.CheckIn)
	items.POST("/checkout", itemHandler.CheckOut)
	items.GET("", itemHandler.List)
	items.GET("/states", itemHandler.States)
	items.GET("/:serial/history", itemHandler.History)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:number", orderHandler.Get)
	orders.POST("/:number/invoice", orderHandler.AttachInvoice)
	orders.POST("/:number/delivery", orderHandler.IssueDelivery)
	orders.POST("/:number/signed", orderHandler.ConfirmDelivery)
	orders.PUT("/:number/files/:type", orderHandler.ReplaceFile)
	orders.GET("/:number/delivery-note", orderHandler.DeliveryNote)
	orders.GET("/:number/files", fileHandler.List)
	orders.GET("/:number/files/active", fileHandler.Active)

	files := api.Group("/files")
	files.GET("/:id", fileHandler.Download)
	files.POST("/:id/restore", fileHandler.Restore)

	demos := api.Group("/demos")
	demos.POST("", demoHandler.Create)
	demos.GET("", demoHandler.List)
	demos.GET("/:id", demoHandler.Get)

	api.POST("/extract", extractionHandler.Extract)

	admin := api.Group("")
	admin.Use(middleware.AdminRequired(gate))
	admin.DELETE("/orders/:number", adminHandler.DeleteOrder)
	admin.DELETE("/orders/:number/files/:type", adminHandler.DeleteAttachment)
	admin.DELETE("/demos/:id", adminHandler.DeleteDemo)

	return engine
}
