package routes

import (
	"po-backend/config"
	"po-backend/controllers"
	"po-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTableRoutes(app *fiber.App, db *gorm.DB) {
	tableController := controllers.NewTableController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/tables",
		middleware.AuthMiddleware,
	)

	api.Get("/logs", tableController.GetLogs)
	api.Get("/:table", tableController.GetTableData)
	api.Post("/:table/check-duplicates", tableController.CheckDuplicates)
	api.Post("/:table/rows", tableController.InsertWithCheck)
	api.Put("/:table/rows", tableController.UpdateRow)
	// po_line keys contain a slash, so deletes address the row in the body.
	api.Delete("/:table/rows", tableController.DeleteRow)
}
