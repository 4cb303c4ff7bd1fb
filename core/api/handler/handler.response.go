// Package handler chứa các HTTP handler của front door.
// Front door chỉ là glue: validate input, gọi pipeline, map kết quả sang response code.
package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"retro_notify/core/common"
)

// validate dùng chung cho các handler trong package
var validate = validator.New()

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse map một error của pipeline sang JSON error body thống nhất.
// *common.Error giữ nguyên status code và error code của nó;
// error khác coi như internal server error - raw error không lọt ra ngoài unmapped.
func ErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"success": false,
			"code":    customErr.Code.Code,
			"error":   customErr.Message,
		})
	}

	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"code":    common.ErrCodeInternalServer.Code,
		"error":   err.Error(),
	})
}
