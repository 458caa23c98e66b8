package routes

import (
	"po-backend/config"
	"po-backend/controllers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")

	api.Post("/register", authController.Register)
	api.Post("/claim", authController.Claim)
	api.Post("/login", authController.Login)
}
