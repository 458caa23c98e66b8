package main

import (
	"fmt"
	"log"

	"po-backend/config"
	"po-backend/controllers/idgen"
	"po-backend/models"
	"po-backend/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	config.EnsureDatabaseExists(config.DBName)

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The four line-item tables share one schema; migrate each name
	// against the same model.
	for _, kind := range models.AllTableKinds() {
		if err := db.Table(kind.TableName()).AutoMigrate(&models.LineItem{}); err != nil {
			log.Fatalf("Failed to migrate %s: %v", kind.TableName(), err)
		}
	}
	if err := db.AutoMigrate(&models.User{}, &models.OperationLog{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	idgen.Init()

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupShipmentRoutes(app, db)
	routes.SetupReportRoutes(app, db)
	routes.SetupTableRoutes(app, db)

	log.Fatal(app.Listen(fmt.Sprintf(":%s", config.APP_PORT)))
}
