package testtool

import (
	"errors"
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"football_highlights_service/pkg/logger"

	"go.uber.org/zap"
)

// DefaultPprofAddr 只在本機監聽
const DefaultPprofAddr = "127.0.0.1:6060"

// StartPprof 依設定啟動 pprof 監控伺服器, 回傳的 server 可用於關閉
func StartPprof(enabled bool, addr string) *http.Server {
	if !enabled {
		logger.Log.Info("pprof is disabled")
		return nil
	}
	if addr == "" {
		addr = DefaultPprofAddr
	}

	srv := &http.Server{Addr: addr, Handler: http.DefaultServeMux}
	go func() {
		logger.Log.Info("Starting pprof server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("pprof server failed", zap.Error(err))
		}
	}()
	return srv
}

// pprof 提供以下分析端點：
// 	•	/debug/pprof/ → 顯示所有可用的分析數據
// 	•	/debug/pprof/goroutine → 顯示所有 Goroutines
// 	•	/debug/pprof/heap → 顯示記憶體分配
// 	•	/debug/pprof/profile → 執行 30 秒 CPU 分析
//
// 匯出時 CPU 大多耗在 ffmpeg 子程序, 可先看 goroutine 是否卡在 cut:
// ```
// go tool pprof http://127.0.0.1:6060/debug/pprof/goroutine
// ```
