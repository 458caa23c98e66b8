package routes

import (
	"po-backend/config"
	"po-backend/controllers"
	"po-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/report",
		middleware.AuthMiddleware,
	)

	api.Post("/sync", reportController.SyncReport)
	api.Post("/sync-excel", reportController.SyncExcel)
	api.Post("/detect-sheets", reportController.DetectSheets)
}
