package handlers

import (
	"fmt"
	"strconv"

	errprocess "football_highlights_service/pkg/err"
	"football_highlights_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorRes 錯誤回應
type ErrorRes struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Video file not found"`
}

// ConnectCheck check api connect start
// @Summary Check service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "Backend is running. Use /api/* endpoints."
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("Backend is running. Use /api/* endpoints.")
}

// Health liveness probe
// @Summary Health check
// @Tags Shared
// @Success 200 {string} string "OK"
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging for a service
// @Tags Shared
// @Param service query string false "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	service := c.Query("service")
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("service", service), zap.String("status", statusStr))

	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// fail 將錯誤轉為 {success:false, error} 回應
func fail(c *fiber.Ctx, err error) error {
	return c.Status(errprocess.HTTPStatus(err)).JSON(ErrorRes{
		Success: false,
		Error:   errprocess.Message(err),
	})
}

// ErrorHandler fiber 層級錯誤 (body 過大, 路由不存在, panic) 也回傳相同格式
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}
	if code == fiber.StatusRequestEntityTooLarge {
		msg = "File too large"
	}
	if code >= fiber.StatusInternalServerError {
		logger.Log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(ErrorRes{Success: false, Error: msg})
}
