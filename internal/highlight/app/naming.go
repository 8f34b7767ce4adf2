package app

import (
	"fmt"
	"strings"

	"football_highlights_service/internal/highlight/domain"

	"github.com/google/uuid"
)

// 產生 8 碼隨機識別, 測試可替換
var shortID = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func clipName(index int, label domain.Label) string {
	return fmt.Sprintf("clip_%d_%s_%s.mp4", index, label, shortID())
}

func manifestName() string {
	return fmt.Sprintf("concat_%s.txt", shortID())
}

func reelName(unixMillis int64) string {
	return fmt.Sprintf("highlight_reel_%d.mp4", unixMillis)
}

// manifestLine ffmpeg concat 格式, 單引號需跳脫
func manifestLine(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'\n"
}
