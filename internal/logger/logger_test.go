package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", FormatJSON, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("split", "test").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "test", ev["split"])
	assert.Equal(t, "shown", ev["message"])
	assert.Contains(t, ev, "time")
}

func TestNew_ConsoleLevelTags(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "console", &buf)

	log.Debug().Msg("details")
	log.Error().Msg("boom")

	out := buf.String()
	assert.Contains(t, out, "[DBG]")
	assert.Contains(t, out, "[ERR]")
	assert.Contains(t, out, "boom")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", FormatJSON, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
