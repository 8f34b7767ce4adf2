package handlers

import (
	"os"

	"football_highlights_service/internal/highlight/app"
	"football_highlights_service/internal/highlight/domain"
	errprocess "football_highlights_service/pkg/err"

	"github.com/gofiber/fiber/v2"
)

// UploadVideoRes upload response
type UploadVideoRes struct {
	Success bool         `json:"success" example:"true"`
	Video   domain.Video `json:"video"`
}

// DetectRes detect response
type DetectRes struct {
	Success    bool                  `json:"success" example:"true"`
	Highlights []domain.Highlight    `json:"highlights"`
	Metadata   domain.DetectMetadata `json:"metadata"`
}

// ExportRes export response
type ExportRes struct {
	Success bool          `json:"success" example:"true"`
	Clips   []domain.Clip `json:"clips"`
	Reel    domain.Reel   `json:"reel"`
}

// HighlightHandler definition highlight handler
type HighlightHandler struct {
	usecase app.HighlightUseCase
}

// NewHighlightHandler 建立 HighlightHandler
func NewHighlightHandler(usecase app.HighlightUseCase) *HighlightHandler {
	return &HighlightHandler{usecase: usecase}
}

// UploadVideo 接收上傳影片
// @Summary Upload a match video
// @Description Stores an MP4, MOV or AVI file (500 MB max) and reads its duration with ffprobe
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file"
// @Success 200 {object} UploadVideoRes
// @Failure 400 {object} ErrorRes
// @Failure 413 {object} ErrorRes
// @Failure 500 {object} ErrorRes
// @Router /api/upload [post]
func (h *HighlightHandler) UploadVideo(c *fiber.Ctx) error {
	// 1. 取得上傳檔案
	fileHeader, err := c.FormFile("video")
	if err != nil {
		return fail(c, &errprocess.Error{Kind: errprocess.InvalidInput, Msg: "No video file provided", Err: err})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, errprocess.Wrap(errprocess.Internal, "Failed to read uploaded file", err))
	}
	defer file.Close()

	// 2. 儲存並讀取影片資訊
	res, err := h.usecase.UploadVideo(c.UserContext(), domain.UploadVideoReq{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		File:        file,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(UploadVideoRes{Success: true, Video: res.Video})
}

// DetectHighlights 偵測精華片段
// @Summary Detect highlights
// @Description Produces candidate highlight intervals for a video of the given duration
// @Tags Highlights
// @Accept json
// @Produce json
// @Param request body domain.DetectReq true "Video path and duration in seconds"
// @Success 200 {object} DetectRes
// @Failure 400 {object} ErrorRes
// @Router /api/highlights/detect [post]
func (h *HighlightHandler) DetectHighlights(c *fiber.Ctx) error {
	var req domain.DetectReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &errprocess.Error{Kind: errprocess.InvalidInput, Msg: "Valid video duration is required", Err: err})
	}

	res, err := h.usecase.DetectHighlights(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(DetectRes{
		Success:    true,
		Highlights: res.Highlights,
		Metadata:   res.Metadata,
	})
}

// ExportClips 剪輯並合併精華
// @Summary Export highlight clips and reel
// @Description Cuts every highlight without re-encoding, then concatenates them into one reel
// @Tags Export
// @Accept json
// @Produce json
// @Param request body domain.ExportReq true "Source video filename and highlights"
// @Success 200 {object} ExportRes
// @Failure 400 {object} ErrorRes
// @Failure 404 {object} ErrorRes
// @Failure 500 {object} ErrorRes
// @Router /api/export/clips [post]
func (h *HighlightHandler) ExportClips(c *fiber.Ctx) error {
	var req domain.ExportReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, &errprocess.Error{Kind: errprocess.InvalidInput, Msg: "Video filename and highlights are required", Err: err})
	}

	res, err := h.usecase.ExportClips(c.UserContext(), req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(ExportRes{Success: true, Clips: res.Clips, Reel: res.Reel})
}

// DownloadArtifact 下載輸出檔
// @Summary Download an exported clip or reel
// @Tags Export
// @Produce octet-stream
// @Param filename path string true "Artifact filename"
// @Success 200 {file} file
// @Failure 404 {object} ErrorRes
// @Router /api/export/download/{filename} [get]
func (h *HighlightHandler) DownloadArtifact(c *fiber.Ctx) error {
	artifact, err := h.usecase.GetArtifact(c.Params("filename"))
	if err != nil {
		return fail(c, err)
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		return fail(c, &errprocess.Error{Kind: errprocess.NotFound, Msg: "File not found", Err: err})
	}

	c.Attachment(artifact.Filename)
	c.Set(fiber.HeaderContentType, "video/mp4")
	// fasthttp 送完後會關閉 f
	return c.SendStream(f, int(artifact.Size))
}

// UploadStatus 前端檢查後端是否啟動
// @Summary Upload endpoint probe
// @Tags Upload
// @Success 200 {object} map[string]interface{}
// @Router /api/upload [get]
func (h *HighlightHandler) UploadStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "message": "Upload endpoint ready"})
}
