package router

import (
	"bizconsole_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}
}

// SetupFieldRoutes sets up the input field catalog routes.
func SetupFieldRoutes(authenticatedGroup *gin.RouterGroup, fieldHandler *handlers.FieldHandler) {
	fieldRoutes := authenticatedGroup.Group("/fields")
	{
		fieldRoutes.POST("", fieldHandler.CreateField)
		fieldRoutes.GET("", fieldHandler.GetFields)
		fieldRoutes.PUT("/:id", fieldHandler.UpdateField)
		fieldRoutes.PUT("/:id/options", fieldHandler.UpdateSelectOptions)
		fieldRoutes.DELETE("/:id", fieldHandler.DeleteField)
	}
}

// SetupInventoryRoutes sets up the inventory routes. The barcode route lives
// outside /inventory because gin cannot mix /:id with a literal sibling
// segment in one group.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory")
	{
		inventoryRoutes.POST("", inventoryHandler.CreateItem)
		inventoryRoutes.GET("", inventoryHandler.GetItems)
		inventoryRoutes.GET("/:id", inventoryHandler.GetItemByID)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
	}

	authenticatedGroup.GET("/barcode/:productID", inventoryHandler.GetBarcode)
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupSoldRoutes sets up the sold record routes.
func SetupSoldRoutes(authenticatedGroup *gin.RouterGroup, soldHandler *handlers.SoldHandler) {
	soldRoutes := authenticatedGroup.Group("/sold")
	{
		soldRoutes.POST("", soldHandler.SellFromInventory)
		soldRoutes.GET("", soldHandler.GetSoldRecords)
		soldRoutes.GET("/:id", soldHandler.GetSoldRecordByID)
		soldRoutes.POST("/:id/payments", soldHandler.AddPayment)
	}

	// Selling an order hangs off the order resource to keep the /sold tree
	// free of a literal segment beside the :id wildcard.
	authenticatedGroup.POST("/orders/:id/sell", soldHandler.SellFromOrder)
}

// SetupUploadRoutes sets up the image upload routes.
func SetupUploadRoutes(authenticatedGroup *gin.RouterGroup, uploadHandler *handlers.UploadHandler) {
	authenticatedGroup.POST("/uploads", uploadHandler.UploadImage)
}
