package router

import (
	"database/sql"

	"bizconsole_backend/internal/handlers"
	"bizconsole_backend/internal/imagehost"
	"bizconsole_backend/internal/middleware"
	"bizconsole_backend/internal/repositories"
	"bizconsole_backend/internal/services"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	fieldRepo := repositories.NewFieldRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	soldRepo := repositories.NewSoldRepository(db)
	counterRepo := repositories.NewCounterRepository()

	// Initialize Services
	authService := services.NewAuthService(adminEmail(), adminPasswordHash())
	fieldService := services.NewFieldService(fieldRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, fieldRepo, counterRepo, db)
	orderService := services.NewOrderService(orderRepo, inventoryRepo, fieldRepo, counterRepo, db)
	soldService := services.NewSoldService(soldRepo, inventoryRepo, orderRepo, fieldRepo, counterRepo, db)
	imageHost := imagehost.New(utils.Getenv("IMAGE_HOST_ENDPOINT", ""), utils.Getenv("IMAGE_HOST_API_KEY", ""))

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	fieldHandler := handlers.NewFieldHandler(fieldService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	soldHandler := handlers.NewSoldHandler(soldService)
	uploadHandler := handlers.NewUploadHandler(imageHost)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupAuthRoutes(apiV1, authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupFieldRoutes(authenticated, fieldHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupSoldRoutes(authenticated, soldHandler)
		SetupUploadRoutes(authenticated, uploadHandler)
	}
}

func adminEmail() string {
	return utils.Getenv("ADMIN_EMAIL", "admin@example.com")
}

// adminPasswordHash resolves the admin credential: a precomputed bcrypt hash
// when ADMIN_PASSWORD_HASH is set, otherwise a hash of ADMIN_PASSWORD.
func adminPasswordHash() []byte {
	if hash := utils.Getenv("ADMIN_PASSWORD_HASH", ""); hash != "" {
		return []byte(hash)
	}

	password := utils.Getenv("ADMIN_PASSWORD", "admin")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "Failed to hash admin password")
		return nil
	}
	return hash
}
