package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/syncstatus/internal/errors"
)

func TestNewOutput_SelectsFormat(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &JSONOutput{}, NewOutput(&bytes.Buffer{}, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&bytes.Buffer{}, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&bytes.Buffer{}, ""))
}

func TestTTYOutput_ErrorShowsAction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Error(fmt.Errorf("logout: %w", errors.ErrNotSignedIn))

	msg, action := errors.Actionable(errors.ErrNotSignedIn)
	assert.Contains(t, buf.String(), msg)
	if action != "" {
		assert.Contains(t, buf.String(), action)
	}
}

func TestJSONOutput_Messages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Success("done")
	out.Warning("careful")
	out.Info("fyi")

	dec := json.NewDecoder(&buf)
	for _, want := range []jsonMessage{
		{Type: "success", Message: "done"},
		{Type: "warning", Message: "careful"},
		{Type: "info", Message: "fyi"},
	} {
		var got jsonMessage
		require.NoError(t, dec.Decode(&got))
		assert.Equal(t, want, got)
	}
}

func TestJSONOutput_ErrorKeepsDetails(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := fmt.Errorf("open state.db: %w", errors.ErrStoreUnavailable)
	NewJSONOutput(&buf).Error(err)

	var got jsonMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got.Type)
	assert.Equal(t, errors.UserMessage(err), got.Message)
	assert.Equal(t, err.Error(), got.Details)
}

func TestOutput_JSONIndents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONOutput(&buf).JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
