// @title           Claynova Backend API
// @version         1.0.0
// @description     Backend API for the Claynova handcrafted clay keychain storefront. Serves the product catalog, WhatsApp checkout links, and the admin panel with image upload and AI-assisted content generation.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

package main

import (
	"log"
	"net/http"
	"net/url"

	"claynova-backend/docs"
	"claynova-backend/internal/cache"
	"claynova-backend/internal/config"
	"claynova-backend/internal/database"
	"claynova-backend/internal/genai"
	"claynova-backend/internal/handlers"
	"claynova-backend/internal/services"
	"claynova-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Initialize Gemini client (a missing key disables AI content
	// generation; the workflows fall back to manual/default text)
	genaiClient := genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	if !genaiClient.Available() {
		log.Println("Warning: GEMINI_API_KEY not set. AI content generation is disabled.")
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	catalogEvents := supabase.NewCatalogEvents(supabaseClient.Supabase)

	// Create database client for direct queries
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required. Set it to your Supabase PostgreSQL connection string.")
	}
	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
	} else {
		defer migrator.Close()
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: Migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
	}

	// Optional Redis read cache
	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		productCache, err = cache.NewProductCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Read caching is disabled.", err)
			productCache = nil
		}
	}

	// Initialize service and handlers
	productService := services.NewProductService(dbClient, storageClient, genaiClient, catalogEvents, productCache)
	productsHandler := handlers.NewProductsHandler(productService, cfg.WhatsAppNumber)
	adminHandler := handlers.NewAdminProductsHandler(productService)

	// Setup router
	router := gin.Default()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")

	// Storefront routes
	api.GET("/products", productsHandler.ListProducts)
	api.GET("/products/featured", productsHandler.ListFeatured)
	api.GET("/products/categories", productsHandler.ListCategories)
	api.GET("/products/category/:category", productsHandler.ListByCategory)
	api.GET("/products/:product_id", productsHandler.GetProduct)
	api.GET("/products/:product_id/checkout-link", productsHandler.CheckoutLink)
	api.POST("/contact/link", productsHandler.ContactLink)

	// Admin routes (unauthenticated)
	api.GET("/admin/products", adminHandler.ListProducts)
	api.POST("/admin/products", adminHandler.CreateProduct)
	api.PATCH("/admin/products/:product_id", adminHandler.UpdateProduct)
	api.DELETE("/admin/products/:product_id", adminHandler.DeleteProduct)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
