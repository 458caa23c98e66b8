package controllers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"po-backend/config"
	"po-backend/excel"
	"po-backend/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

// SyncReport fills the Comments and Reply columns of an uploaded order
// report from the closed shipment tables and streams the updated
// workbook back. The per-row summary travels in the X-Sync-Result
// header so the body can stay a plain file download.
func (c *ReportController) SyncReport(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing file upload",
		})
	}

	path, err := saveUpload(ctx, fileHeader.Filename, "file")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store upload",
			"error":   err.Error(),
		})
	}
	defer os.Remove(path)

	processor := excel.NewReportSyncProcessor(repositories.NewShipmentRepository(c.DB))
	result, err := processor.Process(path)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Report sync failed",
			"error":   err.Error(),
		})
	}

	summary, _ := json.Marshal(fiber.Map{
		"updated_rows": result.UpdatedRows,
		"errors":       result.Errors,
	})
	ctx.Set("X-Sync-Result", string(summary))
	return ctx.Download(result.FilePath, fileHeader.Filename)
}

// SyncExcel reconciles an order report against a second workbook instead
// of the database. Sheet names default to the ones the reports ship with.
func (c *ReportController) SyncExcel(ctx *fiber.Ctx) error {
	orderHeader, err := ctx.FormFile("order_report")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing order_report upload",
		})
	}
	sourceHeader, err := ctx.FormFile("source_data")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing source_data upload",
		})
	}

	orderPath, err := saveUpload(ctx, orderHeader.Filename, "order_report")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store upload",
			"error":   err.Error(),
		})
	}
	defer os.Remove(orderPath)

	sourcePath, err := saveUpload(ctx, sourceHeader.Filename, "source_data")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store upload",
			"error":   err.Error(),
		})
	}
	defer os.Remove(sourcePath)

	orderSheet := ctx.FormValue("order_sheet", "Order Report")
	sourceSheet := ctx.FormValue("source_sheet", "WF Closed")

	processor := excel.NewExcelSyncProcessor()
	result, err := processor.ProcessTwoFiles(orderPath, sourcePath, orderSheet, sourceSheet)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Excel sync failed",
			"error":   err.Error(),
		})
	}

	summary, _ := json.Marshal(fiber.Map{
		"updated_rows": result.UpdatedRows,
		"errors":       result.Errors,
	})
	ctx.Set("X-Sync-Result", string(summary))
	return ctx.Download(result.FilePath, orderHeader.Filename)
}

// DetectSheets lists the worksheet names of an uploaded workbook so the
// UI can offer order_sheet/source_sheet choices before a sync.
func (c *ReportController) DetectSheets(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing file upload",
		})
	}

	path, err := saveUpload(ctx, fileHeader.Filename, "file")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to store upload",
			"error":   err.Error(),
		})
	}
	defer os.Remove(path)

	sheets, err := excel.SheetNames(path)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read workbook",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Sheets detected",
		"data": fiber.Map{
			"sheets": sheets,
		},
	})
}

// saveUpload writes a multipart file into the upload folder under a
// collision-proof name and returns the stored path.
func saveUpload(ctx *fiber.Ctx, originalName, formKey string) (string, error) {
	if err := os.MkdirAll(config.UploadFolder, 0o755); err != nil {
		return "", err
	}
	fileHeader, err := ctx.FormFile(formKey)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(originalName))
	path := filepath.Join(config.UploadFolder, name)
	if err := ctx.SaveFile(fileHeader, path); err != nil {
		return "", err
	}
	return path, nil
}
