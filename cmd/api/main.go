package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-papeleria-pos/internal/handler"
	"go-papeleria-pos/internal/middleware"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/internal/service"
	"go-papeleria-pos/internal/ws"
	"go-papeleria-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on environment")
	}

	db := database.ConnectDB(log)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Sale{},
		&model.SaleLine{},
		&model.Purchase{},
		&model.PurchaseLine{},
		&model.TillSession{},
		&model.DocumentCounter{},
	); err != nil {
		log.WithError(err).Fatal("auto migration failed")
	}

	seedAdmin(db, log)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Wiring
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	tillRepo := repository.NewTillRepo(db)
	sequenceRepo := repository.NewSequenceRepo()

	authService := service.NewAuthService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	saleService := service.NewSaleService(db, saleRepo, productRepo, sequenceRepo, wsHub)
	purchaseService := service.NewPurchaseService(db, purchaseRepo, productRepo, supplierRepo, sequenceRepo, wsHub)
	tillService := service.NewTillService(db, tillRepo, saleRepo, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	tillHandler := handler.NewTillHandler(tillService)

	app := fiber.New(fiber.Config{
		AppName: "Papeleria POS v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Everything below requires a valid token
	protected := api.Group("", middleware.RequireAuth(userRepo))

	admin := middleware.RequireRoles(model.RoleAdmin)
	adminOrCajero := middleware.RequireRoles(model.RoleAdmin, model.RoleCajero)
	adminOrAlmacenista := middleware.RequireRoles(model.RoleAdmin, model.RoleAlmacenista)

	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.GetAll)
	categories.Get("/active", categoryHandler.GetAllActive)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", admin, categoryHandler.Create)
	categories.Put("/:id", admin, categoryHandler.Update)
	categories.Delete("/:id", admin, categoryHandler.Delete)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", supplierHandler.GetAll)
	suppliers.Get("/active", supplierHandler.GetAllActive)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOrAlmacenista, supplierHandler.Create)
	suppliers.Put("/:id", adminOrAlmacenista, supplierHandler.Update)
	suppliers.Delete("/:id", admin, supplierHandler.Delete)

	products := protected.Group("/products")
	products.Get("/", productHandler.GetAll)
	products.Get("/active", productHandler.GetAllActive)
	products.Get("/low-stock", productHandler.GetLowStock)
	products.Get("/search", productHandler.Search)
	products.Get("/category/:id", productHandler.GetByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOrAlmacenista, productHandler.Create)
	products.Put("/:id", adminOrAlmacenista, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	sales := protected.Group("/sales")
	sales.Get("/", adminOrAlmacenista, saleHandler.GetAll)
	sales.Get("/today", saleHandler.GetToday)
	sales.Get("/today/stats", saleHandler.TodayStats)
	sales.Get("/date/:date", adminOrAlmacenista, saleHandler.GetByDate)
	sales.Get("/period", adminOrAlmacenista, saleHandler.GetByPeriod)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Post("/", adminOrCajero, saleHandler.Create)
	sales.Delete("/:id", admin, saleHandler.Cancel)

	purchases := protected.Group("/purchases")
	purchases.Get("/", adminOrAlmacenista, purchaseHandler.GetAll)
	purchases.Get("/today/stats", adminOrAlmacenista, purchaseHandler.TodayStats)
	purchases.Get("/date/:date", adminOrAlmacenista, purchaseHandler.GetByDate)
	purchases.Get("/period", adminOrAlmacenista, purchaseHandler.GetByPeriod)
	purchases.Get("/supplier/:id", adminOrAlmacenista, purchaseHandler.GetBySupplier)
	purchases.Get("/:id", adminOrAlmacenista, purchaseHandler.GetByID)
	purchases.Post("/", adminOrAlmacenista, purchaseHandler.Create)
	purchases.Delete("/:id", admin, purchaseHandler.Cancel)

	till := protected.Group("/till-sessions")
	till.Get("/", admin, tillHandler.GetAll)
	till.Get("/active", tillHandler.GetActive)
	till.Get("/mine", tillHandler.GetMine)
	till.Get("/date/:date", admin, tillHandler.GetByDate)
	till.Get("/:id", adminOrCajero, tillHandler.GetByID)
	till.Post("/open", adminOrCajero, tillHandler.Open)
	till.Put("/:id/close", adminOrCajero, tillHandler.Close)

	// WebSocket endpoint for live sale and stock events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited")
}

// seedAdmin creates the default administrator account on first boot.
func seedAdmin(db *gorm.DB, log *logrus.Logger) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@papeleria.local"); err == nil {
		return
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@papeleria.local",
		Role:     model.RoleAdmin,
		Active:   true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.WithError(err).Warn("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Warn("failed to create admin user")
		return
	}
	log.WithField("email", admin.Email).Info("admin user created")
}
