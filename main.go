package main

import (
	"football_highlights_service/internal/highlight/api/router"

	"github.com/gofiber/fiber/v2"
)

// 服務入口在 cmd/highlight_service, 此程式只供 swag 掃描路由
// swag init -g main.go --output ./cmd/highlight_service/docs
func main() {
	app := fiber.New()

	router.RegisterRoutes(app, nil, router.Options{})
}
