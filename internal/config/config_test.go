package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CORPUS_FORMAT", "SOURCE_DIR", "TARGET_DIR", "SPLITS", "TSV_VARIANT",
	"TSV_AUDIO_DIR", "FILENAME_PREFIX", "DUPLICATE_POLICY", "LOG_LEVEL",
	"LOG_FORMAT", "CATALOG_ENABLED", "CATALOG_PROBE_METADATA", "DB_HOST", "DB_PORT", "DB_USER",
	"DB_PASSWORD", "DB_NAME",
}

// clearEnv blanks every key Load reads; getEnv treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, FormatTranscripts, cfg.Corpus.Format)
	assert.Equal(t, []string{"test", "train"}, cfg.Corpus.Splits)
	assert.Equal(t, "wylie", cfg.Corpus.TSVVariant)
	assert.Equal(t, "wav", cfg.Corpus.TSVAudioDir)
	assert.Equal(t, "SP02-OTR002", cfg.Corpus.FilenamePrefix)
	assert.Equal(t, DuplicateOverwrite, cfg.Corpus.DuplicatePolicy)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Catalog.Enabled)
	assert.False(t, cfg.Catalog.ProbeMetadata)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "corpus", cfg.Database.Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORPUS_FORMAT", FormatTSV)
	t.Setenv("SPLITS", " train , ,test ")
	t.Setenv("CATALOG_ENABLED", "true")
	t.Setenv("DB_PORT", "53306")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, FormatTSV, cfg.Corpus.Format)
	assert.Equal(t, []string{"train", "test"}, cfg.Corpus.Splits)
	assert.True(t, cfg.Catalog.Enabled)
	assert.Equal(t, 53306, cfg.Database.Port)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("CATALOG_ENABLED", "maybe")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 3306, cfg.Database.Port)
	assert.False(t, cfg.Catalog.Enabled)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a key that is already present, so the keys
	// the file sets are unset here; t.Setenv restores them on cleanup.
	for _, k := range []string{"SOURCE_DIR", "TSV_VARIANT"} {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SOURCE_DIR=/data/src\nTSV_VARIANT=uni\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/src", cfg.Corpus.SourceDir)
	assert.Equal(t, "uni", cfg.Corpus.TSVVariant)
}

func validConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Format:          FormatTranscripts,
			SourceDir:       "/src",
			TargetDir:       "/dst",
			Splits:          []string{"test"},
			FilenamePrefix:  "SP02-OTR002",
			DuplicatePolicy: DuplicateOverwrite,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "tsv valid", mutate: func(c *Config) { c.Corpus.Format = FormatTSV }},
		{name: "unknown format", mutate: func(c *Config) { c.Corpus.Format = "flac" }, wantErr: "unknown corpus format"},
		{name: "unknown policy", mutate: func(c *Config) { c.Corpus.DuplicatePolicy = "merge" }, wantErr: "unknown duplicate policy"},
		{name: "no source", mutate: func(c *Config) { c.Corpus.SourceDir = "" }, wantErr: "source dir"},
		{name: "no target", mutate: func(c *Config) { c.Corpus.TargetDir = "" }, wantErr: "target dir"},
		{name: "no splits", mutate: func(c *Config) { c.Corpus.Splits = nil }, wantErr: "no splits"},
		{name: "tsv without prefix", mutate: func(c *Config) {
			c.Corpus.Format = FormatTSV
			c.Corpus.FilenamePrefix = ""
		}, wantErr: "filename prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
