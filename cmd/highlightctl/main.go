package main

import (
	"os"

	"football_highlights_service/pkg/logger"
)

func main() {
	logger.Log = logger.Initialize("highlightctl", "")
	defer logger.Log.Sync()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
