package domain

import (
	"io"
	"slices"
)

const (
	// Sport 目前只支援足球
	Sport = "football"
	// UploadsURLPrefix 上傳區靜態路徑
	UploadsURLPrefix = "/uploads"
	// OutputsURLPrefix 輸出區靜態路徑
	OutputsURLPrefix = "/outputs"
	// DownloadURLPrefix 下載路徑
	DownloadURLPrefix = "/api/export/download"
)

// AllowedContentTypes 允許上傳的影片格式 (MP4, MOV, AVI)
var AllowedContentTypes = []string{"video/mp4", "video/quicktime", "video/x-msvideo"}

// IsAllowedContentType 只比對 MIME type, 不看副檔名
func IsAllowedContentType(contentType string) bool {
	return slices.Contains(AllowedContentTypes, contentType)
}

// UploadVideoReq usecase upload video request
type UploadVideoReq struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// Video 上傳完成的影片
type Video struct {
	ID           string  `json:"id"`
	Filename     string  `json:"filename"`
	OriginalName string  `json:"originalName"`
	Path         string  `json:"path"`
	Duration     float64 `json:"duration"`
	Size         int64   `json:"size"`
	Sport        string  `json:"sport"`
}

// UploadVideoRes usecase upload video response
type UploadVideoRes struct {
	Video Video `json:"video"`
}

// ProbeResult ffprobe 讀出的影片資訊
type ProbeResult struct {
	Duration float64
}

// Artifact 可下載的輸出檔
type Artifact struct {
	Filename string
	Path     string
	Size     int64
}
