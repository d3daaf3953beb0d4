package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	previous := log.Default()
	t.Cleanup(func() { log.SetDefault(previous) })
}

func TestSetupWriter_JSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "info", "json"))

	New("engine").Info("index created", "index", "cities")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "index created", entry["msg"])
	assert.Equal(t, "cities", entry["index"])
}

func TestSetupWriter_LevelFilters(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "WARN", "logfmt"))

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestSetup_Errors(t *testing.T) {
	restoreDefault(t)
	assert.Error(t, Setup("loud", "text"))
	assert.Error(t, Setup("info", "xml"))
	assert.NoError(t, Setup("debug", ""))
}
