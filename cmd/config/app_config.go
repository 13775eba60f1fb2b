package config

import (
	"QR-Menu-Backend/internal/api/handlers"
	"QR-Menu-Backend/internal/api/routes"
	"QR-Menu-Backend/internal/middleware"
	"QR-Menu-Backend/internal/utils"
	"QR-Menu-Backend/internal/utils/qrcode"
	"QR-Menu-Backend/internal/utils/storage"
	"QR-Menu-Backend/pkg/jwt"
	"QR-Menu-Backend/pkg/menu"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         8 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	store, err := storage.NewStorageFromConfig(context.Background())
	if err != nil {
		return nil, err
	}
	qr := qrcode.NewGenerator()

	// Repository
	menuRepository := menu.NewMenuRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	menuService := menu.NewMenuService(menuRepository, store, qr, utils.GetConfig("APP_URL"))

	// Handler
	menuHandler := handlers.NewMenuHandler(menuService, validator)

	// routes
	routesConfig := routes.Config{
		App:         app,
		MenuHandler: menuHandler,
		Middleware:  middlewares,
		JWTService:  jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
