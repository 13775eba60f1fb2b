package routes

import (
	"QR-Menu-Backend/internal/api/handlers"
	"QR-Menu-Backend/internal/middleware"
	"QR-Menu-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App         *fiber.App
	MenuHandler handlers.MenuHandler
	Middleware  middleware.Middleware
	JWTService  jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Menus()
	c.GuestRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})

	public := c.App.Group("/api/v1/public")
	public.Get("/menus/:menuId", c.MenuHandler.GetPublicMenu)
}

func (c *Config) Menus() {
	menus := c.App.Group("/api/v1/menus", c.Middleware.AuthMiddleware(c.JWTService))

	menus.Post("", c.MenuHandler.CreateMenu)
	menus.Get("", c.MenuHandler.GetMenus)
	menus.Delete("/:menuId", c.MenuHandler.DeleteMenu)

	// Draft editing
	menus.Get("/:menuId/properties", c.MenuHandler.GetMenuProperties)
	menus.Put("/:menuId/properties", c.MenuHandler.EditMenuProperties)
	menus.Get("/:menuId/sections", c.MenuHandler.GetMenuSections)
	menus.Put("/:menuId/sections", c.MenuHandler.EditMenuSections)
	menus.Get("/:menuId/products", c.MenuHandler.GetMenuProducts)
	menus.Post("/:menuId/products", c.MenuHandler.AddProduct)
	menus.Get("/:menuId/products/:productId", c.MenuHandler.GetProduct)
	menus.Put("/:menuId/products/:productId", c.MenuHandler.EditProduct)
	menus.Delete("/:menuId/products/:productId", c.MenuHandler.DeleteProduct)

	// Publication
	menus.Post("/:menuId/publish", c.MenuHandler.PublishMenu)
	menus.Post("/:menuId/unpublish", c.MenuHandler.UnpublishMenu)
}
