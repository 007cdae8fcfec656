package controllers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMergeStyleAddsFields(t *testing.T) {
	slides := []map[string]any{{"rendered_image_url": "/r/1.png"}}
	img := "/r/full.png"

	out, err := mergeStyle(nil, slides, &img)
	require.NoError(t, err)

	var style map[string]any
	require.NoError(t, json.Unmarshal(out, &style))
	assert.Equal(t, "/r/full.png", style["rendered_image_url"])
	assert.Len(t, style["slides"], 1)
}

func TestMergeStylePreservesUnrelatedKeys(t *testing.T) {
	current := datatypes.JSON(`{"font_size":"large","rendered_image_url":"/old.png"}`)
	img := "/new.png"

	out, err := mergeStyle(current, nil, &img)
	require.NoError(t, err)

	var style map[string]any
	require.NoError(t, json.Unmarshal(out, &style))
	assert.Equal(t, "large", style["font_size"])
	assert.Equal(t, "/new.png", style["rendered_image_url"])
}

func TestMergeStyleNilMeansUnchanged(t *testing.T) {
	current := datatypes.JSON(`{"slides":[{"caption":"keep"}]}`)

	out, err := mergeStyle(current, nil, nil)
	require.NoError(t, err)

	var style map[string]any
	require.NoError(t, json.Unmarshal(out, &style))
	assert.Contains(t, style, "slides")
}

func TestMergeStyleEmptyValuesClear(t *testing.T) {
	current := datatypes.JSON(`{"slides":[{"caption":"old"}],"rendered_image_url":"/old.png"}`)
	empty := ""

	out, err := mergeStyle(current, []map[string]any{}, &empty)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMergeStyleDiscardsMalformedStoredStyle(t *testing.T) {
	current := datatypes.JSON(`{broken`)
	img := "/new.png"

	out, err := mergeStyle(current, nil, &img)
	require.NoError(t, err)

	var style map[string]any
	require.NoError(t, json.Unmarshal(out, &style))
	assert.Equal(t, map[string]any{"rendered_image_url": "/new.png"}, style)
}

func TestParseWindowTime(t *testing.T) {
	existing := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("datetime-local format", func(t *testing.T) {
		got := parseWindowTime("2025-06-01T09:30", &existing)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), *got)
	})

	t.Run("space-separated format", func(t *testing.T) {
		got := parseWindowTime("2025-06-01 09:30", &existing)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), *got)
	})

	t.Run("empty clears the bound", func(t *testing.T) {
		assert.Nil(t, parseWindowTime("", &existing))
	})

	t.Run("unparseable keeps the current bound", func(t *testing.T) {
		got := parseWindowTime("next tuesday", &existing)
		require.NotNil(t, got)
		assert.Equal(t, existing, *got)
	})
}
