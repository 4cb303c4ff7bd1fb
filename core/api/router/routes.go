// Package router đăng ký các route của front door.
package router

import (
	"github.com/gofiber/fiber/v3"

	"retro_notify/core/api/handler"
)

// Handlers gom các handler cần đăng ký route
type Handlers struct {
	Notification *handler.NotificationHandler
	Email        *handler.EmailHandler
	System       *handler.SystemHandler
}

// Register đăng ký tất cả route lên app.
// Path giữ nguyên contract cũ của storefront (không prefix /api/v1).
func Register(app *fiber.App, h Handlers) {
	app.Get("/health", h.System.HandleHealth)
	app.Post("/send-order-notification", h.Notification.HandleSendOrderNotification)
	app.Post("/send-email", h.Email.HandleSendEmail)
}
