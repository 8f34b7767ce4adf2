package errprocess

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"football_highlights_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestKindAndStatus(t *testing.T) {
	logger.SetNewNop()

	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"invalid", Set(InvalidInput, "Valid video duration is required"), InvalidInput, http.StatusBadRequest},
		{"not found", Set(NotFound, "Video file not found"), NotFound, http.StatusNotFound},
		{"export", Wrap(ExportFailed, "cut clip 2", errors.New("exit status 1")), ExportFailed, http.StatusInternalServerError},
		{"probe", Wrap(ProbeFailed, "Failed to read video metadata. Is FFmpeg installed?", errors.New("not found")), ProbeFailed, http.StatusInternalServerError},
		{"plain", errors.New("boom"), Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	logger.SetNewNop()
	err := fmt.Errorf("request: %w", Set(NotFound, "File not found"))
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, "File not found", Message(err))
}

func TestMessage(t *testing.T) {
	logger.SetNewNop()
	cause := errors.New("ffmpeg exited 1: moov atom not found")

	assert.Equal(t, "Failed to read video metadata. Is FFmpeg installed?",
		Message(Wrap(ProbeFailed, "Failed to read video metadata. Is FFmpeg installed?", cause)))
	assert.Equal(t, "cut clip 1: ffmpeg exited 1: moov atom not found",
		Message(Wrap(ExportFailed, "cut clip 1", cause)))
	assert.True(t, errors.Is(Wrap(ExportFailed, "cut clip 1", cause), cause))
}
