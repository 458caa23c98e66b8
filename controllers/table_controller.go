package controllers

import (
	"errors"

	"po-backend/controllers/helpers"
	"po-backend/ledger"
	"po-backend/models"
	"po-backend/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(DB *gorm.DB) *TableController {
	return &TableController{DB: DB}
}

func parseTableParam(ctx *fiber.Ctx) (models.TableKind, error) {
	return models.ParseTableKind(ctx.Params("table"))
}

// GetTableData returns every row of one of the four line-item tables,
// ordered by PO/Line key.
func (c *TableController) GetTableData(ctx *fiber.Ctx) error {
	kind, err := parseTableParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid table name",
		})
	}

	tableRepo := repositories.NewTableRepository(c.DB)
	items, err := tableRepo.GetAll(kind)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch data",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Data fetched successfully",
		"data":    items,
	})
}

type duplicateCheckRequest struct {
	PoLines []string `json:"po_lines" validate:"required,min=1"`
}

// CheckDuplicates reports which of the submitted PO/Line keys already
// exist in the target table. The UI calls this before an import to let
// the user drop or confirm overlapping rows.
func (c *TableController) CheckDuplicates(ctx *fiber.Ctx) error {
	kind, err := parseTableParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid table name",
		})
	}

	var payload duplicateCheckRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	probes := make([]models.LineItem, 0, len(payload.PoLines))
	for _, key := range payload.PoLines {
		probes = append(probes, models.LineItem{PoLine: key})
	}

	tableRepo := repositories.NewTableRepository(c.DB)
	duplicates, err := tableRepo.CheckDuplicates(kind, probes)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to check duplicates",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Duplicate check complete",
		"data": fiber.Map{
			"duplicates": duplicates,
		},
	})
}

type insertRequest struct {
	Rows []models.LineItem `json:"rows" validate:"required,min=1"`
}

// InsertWithCheck inserts new rows, silently skipping any whose PO/Line
// key already exists in the table.
func (c *TableController) InsertWithCheck(ctx *fiber.Ctx) error {
	kind, err := parseTableParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid table name",
		})
	}

	var payload insertRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	tableRepo := repositories.NewTableRepository(c.DB)
	inserted, duplicates, err := tableRepo.InsertWithCheck(kind, payload.Rows)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to insert rows",
			"error":   err.Error(),
		})
	}

	helpers.InsertOperationLog(c.DB, UserEmail(ctx), kind.TableName(), "insert_rows", fiber.Map{
		"inserted":   inserted,
		"duplicates": duplicates,
	})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Rows inserted",
		"data": fiber.Map{
			"inserted":   inserted,
			"duplicates": duplicates,
		},
	})
}

type updateRequest struct {
	PoLine string                 `json:"po_line" validate:"required"`
	Fields map[string]interface{} `json:"fields" validate:"required,min=1"`
}

// UpdateRow overwrites the submitted columns on one row. Columns outside
// the table's allow-list are dropped; total price is recomputed when the
// quantity changes.
func (c *TableController) UpdateRow(ctx *fiber.Ctx) error {
	kind, err := parseTableParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid table name",
		})
	}

	var payload updateRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	tableRepo := repositories.NewTableRepository(c.DB)
	if err := tableRepo.UpdateRow(kind, payload.PoLine, payload.Fields); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Record not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update row",
			"error":   err.Error(),
		})
	}

	helpers.InsertOperationLog(c.DB, UserEmail(ctx), kind.TableName(), "update_row", payload)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Row updated",
	})
}

type deleteRequest struct {
	PoLine string `json:"po_line" validate:"required"`
}

// DeleteRow removes one row addressed by its PO/Line key. The key
// contains a slash, so it travels in the body rather than the path.
func (c *TableController) DeleteRow(ctx *fiber.Ctx) error {
	kind, err := parseTableParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid table name",
		})
	}

	var payload deleteRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	tableRepo := repositories.NewTableRepository(c.DB)
	if err := tableRepo.DeleteRow(kind, payload.PoLine); err != nil {
		if errors.Is(err, ledger.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Record not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete row",
			"error":   err.Error(),
		})
	}

	helpers.InsertOperationLog(c.DB, UserEmail(ctx), kind.TableName(), "delete_row", payload)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Row deleted",
	})
}

// GetLogs lists recent audit entries, newest first, filterable by table
// and operation.
func (c *TableController) GetLogs(ctx *fiber.Ctx) error {
	tableRepo := repositories.NewTableRepository(c.DB)
	logs, err := tableRepo.GetLogs(ctx.Query("table"), ctx.Query("operation"), ctx.QueryInt("limit"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch logs",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logs fetched successfully",
		"data":    logs,
	})
}
