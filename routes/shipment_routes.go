package routes

import (
	"po-backend/config"
	"po-backend/controllers"
	"po-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupShipmentRoutes(app *fiber.App, db *gorm.DB) {
	shipmentController := controllers.NewShipmentController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/shipment",
		middleware.AuthMiddleware,
	)

	api.Post("/process", shipmentController.ProcessShipment)
	api.Post("/return", shipmentController.ReturnShipment)
}
