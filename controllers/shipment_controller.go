package controllers

import (
	"errors"

	"po-backend/ledger"
	"po-backend/models"
	"po-backend/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ShipmentController struct {
	DB *gorm.DB
}

func NewShipmentController(DB *gorm.DB) *ShipmentController {
	return &ShipmentController{DB: DB}
}

var validate = validator.New()

type ShipmentRequest struct {
	SourceTable     string   `json:"source_table" validate:"required"`
	Po              string   `json:"po"`
	Pn              string   `json:"pn"`
	PoLine          string   `json:"po_line"`
	ShipmentQty     float64  `json:"shipment_qty" validate:"required,gt=0"`
	TrackingNo      string   `json:"tracking_no"`
	ShippingMode    string   `json:"shipping_mode"`
	ShippingCost    *float64 `json:"shipping_cost"`
	ShipmentBatchNo string   `json:"shipment_batch_no"`
}

// ProcessShipment moves quantity from an open record to its closed table.
func (c *ShipmentController) ProcessShipment(ctx *fiber.Ctx) error {
	var payload ShipmentRequest
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

	kind, err := models.ParseTableKind(payload.SourceTable)
	if err != nil || !kind.IsOpen() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid source table",
		})
	}

	shipmentRepo := repositories.NewShipmentRepository(c.DB)
	outcome, err := shipmentRepo.Ship(kind, repositories.ShipRequest{
		Po:           payload.Po,
		Pn:           payload.Pn,
		PoLine:       payload.PoLine,
		Qty:          payload.ShipmentQty,
		TrackingNo:   payload.TrackingNo,
		ShippingMode: payload.ShippingMode,
		ShippingCost: payload.ShippingCost,
		BatchNo:      payload.ShipmentBatchNo,
		UserEmail:    UserEmail(ctx),
	})
	if err != nil {
		return shipmentError(ctx, err)
	}

	message := "Partial shipment processed"
	if outcome.Full {
		message = "Full shipment processed"
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    outcome,
	})
}

type ReturnRequest struct {
	ClosedTable     string   `json:"closed_table" validate:"required"`
	RecordID        int64    `json:"record_id" validate:"required"`
	ReturnQty       float64  `json:"return_qty" validate:"required,gt=0"`
	NewShippingCost *float64 `json:"new_shipping_cost"`
	ShipmentBatchNo string   `json:"shipment_batch_no"`
}

// ReturnShipment moves quantity from a closed record back to its open
// table, optionally re-pricing the whole shipment batch's freight.
func (c *ShipmentController) ReturnShipment(ctx *fiber.Ctx) error {
	var payload ReturnRequest
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

	kind, err := models.ParseTableKind(payload.ClosedTable)
	if err != nil || !kind.IsClosed() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid closed table",
		})
	}

	shipmentRepo := repositories.NewShipmentRepository(c.DB)
	outcome, err := shipmentRepo.Return(kind, repositories.ReturnRequest{
		RecordID:        payload.RecordID,
		Qty:             payload.ReturnQty,
		NewShippingCost: payload.NewShippingCost,
		BatchNo:         payload.ShipmentBatchNo,
		UserEmail:       UserEmail(ctx),
	})
	if err != nil {
		return shipmentError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Return processed",
		"data":    outcome,
	})
}

// shipmentError maps ledger errors onto HTTP statuses. Nothing past this
// point surfaces as a raw fault.
func shipmentError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		status = fiber.StatusBadRequest
	case errors.Is(err, ledger.ErrRecordNotFound):
		status = fiber.StatusNotFound
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// UserEmail resolves the acting user for audit attribution: the JWT claim
// when authenticated, the X-User-Email header as a fallback for internal
// callers.
func UserEmail(ctx *fiber.Ctx) string {
	if email, ok := ctx.Locals("userEmail").(string); ok && email != "" {
		return email
	}
	if email := ctx.Get("X-User-Email"); email != "" {
		return email
	}
	return "unknown@example.com"
}
