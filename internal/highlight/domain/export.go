package domain

import "time"

// ExportHighlight 匯出請求中的單一片段
type ExportHighlight struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label Label   `json:"label"`
}

// Duration end - start
func (h ExportHighlight) Duration() float64 {
	return h.End - h.Start
}

// ExportReq usecase export request
type ExportReq struct {
	VideoFilename string            `json:"videoFilename"`
	Highlights    []ExportHighlight `json:"highlights"`
}

// Clip 剪出的片段檔
type Clip struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename"`
	Label       Label   `json:"label"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	URL         string  `json:"url"`
	DownloadURL string  `json:"downloadUrl"`
}

// Reel 合併後的精華影片
type Reel struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl"`
}

// ExportRes usecase export response
type ExportRes struct {
	Clips []Clip `json:"clips"`
	Reel  Reel   `json:"reel"`
}

// NewClip 組合片段輸出資訊
func NewClip(h ExportHighlight, filename string) Clip {
	return Clip{
		ID:          h.ID,
		Filename:    filename,
		Label:       h.Label,
		Start:       h.Start,
		End:         h.End,
		URL:         OutputURL(filename),
		DownloadURL: DownloadURL(filename),
	}
}

// NewReel 組合精華影片輸出資訊
func NewReel(filename string) Reel {
	return Reel{
		Filename:    filename,
		URL:         OutputURL(filename),
		DownloadURL: DownloadURL(filename),
	}
}

// OutputURL static url of an output artifact
func OutputURL(filename string) string {
	return OutputsURLPrefix + "/" + filename
}

// DownloadURL attachment url of an output artifact
func DownloadURL(filename string) string {
	return DownloadURLPrefix + "/" + filename
}

// ExportEvent 匯出完成事件
type ExportEvent struct {
	VideoFilename string    `json:"video_filename"`
	ReelFilename  string    `json:"reel_filename"`
	ClipFilenames []string  `json:"clip_filenames"`
	TotalSeconds  float64   `json:"total_seconds"`
	CreatedAt     time.Time `json:"created_at"`
}
