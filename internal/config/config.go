package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Corpus formats.
const (
	FormatTranscripts = "transcripts" // id<TAB>text, id embeds speaker/book/segment
	FormatTSV         = "tsv"         // header + index,path,sentence; speaker in filename
)

// Duplicate basename policies.
const (
	DuplicateOverwrite = "overwrite"
	DuplicateSkip      = "skip"
	DuplicateSuffix    = "suffix"
)

type Config struct {
	Corpus   CorpusConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
}

type CorpusConfig struct {
	Format          string
	SourceDir       string
	TargetDir       string
	Splits          []string
	TSVVariant      string
	TSVAudioDir     string
	FilenamePrefix  string
	DuplicatePolicy string
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	Enabled       bool
	ProbeMetadata bool // ffprobe each copied file for duration/sample rate
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func Load(envFile string) (*Config, error) {
	godotenv.Load(envFile)

	return &Config{
		Corpus: CorpusConfig{
			Format:          getEnv("CORPUS_FORMAT", FormatTranscripts),
			SourceDir:       getEnv("SOURCE_DIR", ""),
			TargetDir:       getEnv("TARGET_DIR", ""),
			Splits:          splitList(getEnv("SPLITS", "test,train")),
			TSVVariant:      getEnv("TSV_VARIANT", "wylie"),
			TSVAudioDir:     getEnv("TSV_AUDIO_DIR", "wav"),
			FilenamePrefix:  getEnv("FILENAME_PREFIX", "SP02-OTR002"),
			DuplicatePolicy: getEnv("DUPLICATE_POLICY", DuplicateOverwrite),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Catalog: CatalogConfig{
			Enabled:       getEnvBool("CATALOG_ENABLED", false),
			ProbeMetadata: getEnvBool("CATALOG_PROBE_METADATA", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnvInt("DB_PORT", 3306),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "corpus"),
		},
	}, nil
}

// Validate checks the corpus settings. Logging and catalog settings fall back
// to defaults at their point of use.
func (c *Config) Validate() error {
	switch c.Corpus.Format {
	case FormatTranscripts, FormatTSV:
	default:
		return fmt.Errorf("unknown corpus format %q (want %s or %s)", c.Corpus.Format, FormatTranscripts, FormatTSV)
	}
	switch c.Corpus.DuplicatePolicy {
	case DuplicateOverwrite, DuplicateSkip, DuplicateSuffix:
	default:
		return fmt.Errorf("unknown duplicate policy %q", c.Corpus.DuplicatePolicy)
	}
	if c.Corpus.SourceDir == "" {
		return fmt.Errorf("source dir is not set (SOURCE_DIR or -source)")
	}
	if c.Corpus.TargetDir == "" {
		return fmt.Errorf("target dir is not set (TARGET_DIR or -target)")
	}
	if len(c.Corpus.Splits) == 0 {
		return fmt.Errorf("no splits configured")
	}
	if c.Corpus.Format == FormatTSV && c.Corpus.FilenamePrefix == "" {
		return fmt.Errorf("filename prefix is required for %s corpora", FormatTSV)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
