package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"retro_notify/core/common"
)

// SystemHandler xử lý các endpoint hệ thống (health check)
type SystemHandler struct {
	startedAt time.Time
}

// NewSystemHandler tạo mới SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startedAt: time.Now()}
}

// HandleHealth xử lý GET /health
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}
