package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"retro_notify/core/api/dto"
	"retro_notify/core/common"
	"retro_notify/core/logger"
	"retro_notify/core/notification"
	"retro_notify/core/push"
)

// OrderNotifier là phần của notification.Notifier mà handler cần
type OrderNotifier interface {
	NotifyOrderPaid(ctx context.Context, info notification.OrderInfo, force bool) (*push.DispatchResult, error)
}

// NotificationHandler xử lý trigger push notification trực tiếp qua HTTP.
// Đây là entry point thứ hai bên cạnh change stream; cả hai chia sẻ
// cùng Notifier nên marker idempotency áp dụng cho cả hai.
type NotificationHandler struct {
	notifier OrderNotifier
}

// NewNotificationHandler tạo mới NotificationHandler
func NewNotificationHandler(notifier OrderNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// HandleSendOrderNotification xử lý POST /send-order-notification.
// 400 khi thiếu field bắt buộc hoặc không có admin token;
// 500 khi dispatch thất bại toàn phần; 200 kèm summary khi thành công
// (kể cả khi một phần token bị từ chối).
func (h *NotificationHandler) HandleSendOrderNotification(c fiber.Ctx) error {
	var req dto.SendOrderNotificationInput
	if err := c.Bind().Body(&req); err != nil {
		return JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"success": false,
			"code":    common.ErrCodeValidationFormat.Code,
			"error":   fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
		})
	}

	// Validation error: reject ngay, chưa thực hiện I/O nào
	if err := validate.Struct(&req); err != nil {
		return JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"success": false,
			"code":    common.ErrCodeValidationInput.Code,
			"error":   "Missing required fields",
		})
	}

	info := notification.OrderInfo{
		OrderID:      req.OrderID,
		CustomerName: req.CustomerName,
		InstaHandle:  req.InstaHandle,
	}

	result, err := h.notifier.NotifyOrderPaid(c.Context(), info, req.Force)
	if err != nil {
		if errors.Is(err, notification.ErrAlreadyNotified) {
			logger.WithRequest(c).WithField("orderId", req.OrderID).
				Info("🔔 [NOTIFICATION] Đơn hàng đã được notify trước đó")
		} else {
			logger.WithRequest(c).WithError(err).WithField("orderId", req.OrderID).
				Error("🔔 [NOTIFICATION] Dispatch thất bại")
		}
		return ErrorResponse(c, err)
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"success":  true,
		"message":  "Notification sent successfully",
		"response": result,
	})
}
