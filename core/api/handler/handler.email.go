package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"retro_notify/core/api/dto"
	"retro_notify/core/common"
	"retro_notify/core/delivery"
	"retro_notify/core/logger"
)

// Mailer gửi một email HTML tới recipient
type Mailer interface {
	Send(recipient, subject, htmlBody string) error
}

// EmailHandler xử lý gửi email xác nhận giao hàng cho khách.
// Thuần glue: validate -> render template -> gửi qua SMTP channel.
type EmailHandler struct {
	mailer Mailer
}

// NewEmailHandler tạo mới EmailHandler
func NewEmailHandler(mailer Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

// HandleSendEmail xử lý POST /send-email
func (h *EmailHandler) HandleSendEmail(c fiber.Ctx) error {
	var req dto.SendEmailInput
	if err := c.Bind().Body(&req); err != nil {
		return JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"success": false,
			"code":    common.ErrCodeValidationFormat.Code,
			"error":   fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"success": false,
			"code":    common.ErrCodeValidationInput.Code,
			"error":   "Missing required fields",
		})
	}

	items := make([]delivery.ShipmentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, delivery.ShipmentItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	htmlBody, err := delivery.RenderShipmentEmail(delivery.ShipmentEmailData{
		CustomerName:         req.CustomerName,
		OrderID:              req.OrderID,
		Items:                items,
		Subtotal:             req.Subtotal,
		DeliveryCharge:       req.DeliveryCharge,
		Total:                req.Total,
		TrackingID:           req.TrackingID,
		CustomerAddressLine1: req.CustomerAddressLine1,
	})
	if err != nil {
		logger.WithRequest(c).WithError(err).Error("📧 [EMAIL] Render template thất bại")
		return ErrorResponse(c, common.NewError(
			common.ErrCodeInternalServer,
			err.Error(),
			common.StatusInternalServerError,
			nil,
		))
	}

	if err := h.mailer.Send(req.To, delivery.ShipmentEmailSubject, htmlBody); err != nil {
		logger.WithRequest(c).WithError(err).WithField("to", req.To).
			Error("📧 [EMAIL] Gửi email thất bại")
		return ErrorResponse(c, common.NewError(
			common.ErrCodeMailTransport,
			err.Error(),
			common.StatusInternalServerError,
			err,
		))
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"success": true,
		"message": "Email sent successfully",
	})
}
