package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-instant-search/index"
)

func TestApplyDefaults(t *testing.T) {
	settings := IndexSettings{Name: "products"}
	settings.ApplyDefaults()

	assert.Equal(t, index.StoreCompact, settings.PostingStore)
	assert.Equal(t, index.DefaultBufferCapacity, settings.BufferCapacity)
	assert.Equal(t, DefaultMaxAlternatives, settings.MaxAlternatives)
	assert.Equal(t, TallyAll, settings.CandidateTally)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	settings := IndexSettings{
		Name:            "products",
		PostingStore:    index.StoreRoaring,
		BufferCapacity:  64,
		MaxAlternatives: 3,
		CandidateTally:  TallyLegacy,
	}
	settings.ApplyDefaults()

	assert.Equal(t, index.StoreRoaring, settings.PostingStore)
	assert.Equal(t, 64, settings.BufferCapacity)
	assert.Equal(t, 3, settings.MaxAlternatives)
	assert.Equal(t, TallyLegacy, settings.CandidateTally)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		settings       IndexSettings
		expectedErrors int
	}{
		{"valid minimal", IndexSettings{Name: "test_index"}, 0},
		{"valid full", IndexSettings{Name: "test_index", PostingStore: index.StoreMap, BufferCapacity: 10, MaxAlternatives: 5, CandidateTally: TallyLegacy}, 0},
		{"empty name", IndexSettings{Name: "  "}, 1},
		{"unknown store", IndexSettings{Name: "x", PostingStore: "btree"}, 1},
		{"unknown tally", IndexSettings{Name: "x", CandidateTally: "some"}, 1},
		{"negative numbers", IndexSettings{Name: "x", BufferCapacity: -1, MaxAlternatives: -2}, 2},
		{"everything wrong", IndexSettings{PostingStore: "x", CandidateTally: "y", BufferCapacity: -1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.settings.Validate()
			assert.Len(t, problems, tt.expectedErrors, "problems: %v", problems)
		})
	}
}

func TestStoreFactory(t *testing.T) {
	settings := IndexSettings{Name: "x", PostingStore: index.StoreCompact, BufferCapacity: 16}
	factory, err := settings.StoreFactory()
	require.NoError(t, err)

	store, ok := factory().(*index.CompactSet)
	require.True(t, ok)
	assert.Equal(t, 16, store.BufferCapacity())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  readTimeout: 2s
logging:
  level: debug
  format: json
metrics:
  enabled: false
indexes:
  - name: cities
    postingStore: roaring
  - name: people
    maxAlternatives: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.Len(t, cfg.Indexes, 2)
	assert.Equal(t, index.StoreRoaring, cfg.Indexes[0].PostingStore)
	assert.Equal(t, DefaultMaxAlternatives, cfg.Indexes[0].MaxAlternatives)
	assert.Equal(t, index.StoreCompact, cfg.Indexes[1].PostingStore)
	assert.Equal(t, 5, cfg.Indexes[1].MaxAlternatives)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("INSTANT_SEARCH_PORT", "7070")
	t.Setenv("INSTANT_SEARCH_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("invalid index", func(t *testing.T) {
		_, err := Load(writeConfig(t, "indexes:\n  - name: a\n    postingStore: btree\n"))
		assert.Error(t, err)
	})

	t.Run("duplicate index", func(t *testing.T) {
		_, err := Load(writeConfig(t, "indexes:\n  - name: a\n  - name: a\n"))
		assert.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  port: 70000\n"))
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1000, cfg.Server.SyncAddLimit)
	assert.NoError(t, cfg.Validate())
}
