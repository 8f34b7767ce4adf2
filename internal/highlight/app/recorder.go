package app

import "time"

// Recorder 記錄 usecase 指標, 由 pkg/metrics 實作
type Recorder interface {
	RecordUpload(result string)
	RecordDetection(count int)
	RecordExport(result string, elapsed time.Duration)
	RecordCut(result string, elapsed time.Duration)
	RecordEvent(result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordUpload(string)                {}
func (nopRecorder) RecordDetection(int)                {}
func (nopRecorder) RecordExport(string, time.Duration) {}
func (nopRecorder) RecordCut(string, time.Duration)    {}
func (nopRecorder) RecordEvent(string)                 {}
