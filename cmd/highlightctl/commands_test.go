package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"football_highlights_service/internal/highlight/domain"
	"football_highlights_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger.SetNewNop()

	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func TestDetectCommandIsReproducible(t *testing.T) {
	first, err := runCommand(t, "", "detect", "--duration", "600", "--seed", "7")
	require.NoError(t, err)
	second, err := runCommand(t, "", "detect", "--duration", "600", "--seed", "7")
	require.NoError(t, err)

	var a, b domain.DetectRes
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Highlights, b.Highlights)
	assert.NotEmpty(t, a.Highlights)
	assert.Equal(t, "mock-v1.0", a.Metadata.Model)
	assert.Equal(t, float64(600), a.Metadata.Duration)
}

func TestDetectCommandRejectsMissingDuration(t *testing.T) {
	_, err := runCommand(t, "", "detect")
	assert.EqualError(t, err, "Valid video duration is required")
}

func TestExportCommandValidatesHighlights(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, `[{"id":"a","start":5,"end":3,"label":"goal"}]`,
		"export", dir+"/match.mp4", "--output", dir+"/out")
	assert.EqualError(t, err, "Invalid highlight 1: start must be before end")
}

func TestExportCommandSkipsDisabledHighlights(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, `[{"id":"a","start":1,"end":6,"label":"goal","enabled":false}]`,
		"export", dir+"/match.mp4", "--output", dir+"/out")
	assert.EqualError(t, err, "Video filename and highlights are required")
}

func TestReadHighlights(t *testing.T) {
	list, err := readHighlights(strings.NewReader(`[{"id":"a","start":1,"end":6,"label":"foul"}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.ExportHighlight{{ID: "a", Start: 1, End: 6, Label: domain.LabelFoul}}, list)

	wrapped, err := readHighlights(strings.NewReader(`{"highlights":[{"id":"b","start":2,"end":9,"label":"crowd"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "b", wrapped[0].ID)

	// 停用的片段不匯出, 未標示視為啟用
	filtered, err := readHighlights(strings.NewReader(`{"highlights":[
		{"id":"a","start":1,"end":6,"label":"goal","enabled":true},
		{"id":"b","start":10,"end":16,"label":"foul","enabled":false},
		{"id":"c","start":20,"end":26,"label":"crowd"}]}`))
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)

	_, err = readHighlights(strings.NewReader(`nope`))
	assert.Error(t, err)
}
