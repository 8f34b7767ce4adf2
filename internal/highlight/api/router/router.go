package router

import (
	"football_highlights_service/internal/highlight/api/handlers"
	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 靜態目錄與指標
type Options struct {
	UploadDir   string
	OutputDir   string
	MaxUploadMB int
	// nil 時不註冊 /metrics
	Gatherer prometheus.Gatherer
}

// NewApp 建立 fiber app 並掛上共用 middleware
func NewApp(opts Options) *fiber.App {
	maxMB := opts.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 500
	}

	app := fiber.New(fiber.Config{
		AppName:      "football_highlights_service",
		BodyLimit:    maxMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(
		requestid.New(),
		// access log 需在 recover 外層, panic 的請求也會被記錄
		middlewares.AccessLog(),
		recover.New(),
		cors.New(),
	)
	return app
}

// RegisterRoutes 注册 highlight 相关的路由
// @title Football Highlights Service API
// @version 1.0
// @description Upload a match video, detect highlight intervals, export clips and a highlight reel
// @host localhost:10000
// @BasePath /
func RegisterRoutes(app *fiber.App, h *handlers.HighlightHandler, opts Options) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Get("/health", handlers.Health)
	app.Post("/debug", handlers.DebugLogFlag)
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// 上傳與輸出區唯讀
	if opts.UploadDir != "" {
		app.Static(domain.UploadsURLPrefix, opts.UploadDir, fiber.Static{Browse: false})
	}
	if opts.OutputDir != "" {
		app.Static(domain.OutputsURLPrefix, opts.OutputDir, fiber.Static{Browse: false})
	}

	api := app.Group("/api")
	api.Get("/upload", h.UploadStatus)
	api.Post("/upload", h.UploadVideo)
	api.Post("/upload/video", h.UploadVideo)

	api.Post("/highlights/detect", h.DetectHighlights)

	exportRoutes := api.Group("/export")
	exportRoutes.Post("/clips", h.ExportClips)
	exportRoutes.Get("/download/:filename", h.DownloadArtifact)
}
