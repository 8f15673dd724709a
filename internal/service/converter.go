package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"corpus-converter/internal/audio"
	"corpus-converter/internal/config"
	"corpus-converter/internal/corpus"
	"corpus-converter/internal/db"
	"corpus-converter/internal/scanner"
)

const transcriptsFile = "transcripts.txt"

// Catalog records converted pairs. *db.DB implements it.
type Catalog interface {
	Record(ctx context.Context, f *db.ConvertedFile) error
}

// MetadataProber reads audio properties of a copied file.
type MetadataProber func(ctx context.Context, path string) (*audio.Metadata, error)

// Converter turns one corpus into {speaker}_{name} text/audio pairs, one
// split after another. Rows are handled strictly in index order.
type Converter struct {
	cfg     config.CorpusConfig
	log     zerolog.Logger
	catalog Catalog
	probe   MetadataProber
	runID   string
	pattern *corpus.FilenamePattern
}

// NewConverter builds a converter; catalog may be nil.
func NewConverter(cfg config.CorpusConfig, log zerolog.Logger, catalog Catalog) *Converter {
	c := &Converter{
		cfg:     cfg,
		log:     log,
		catalog: catalog,
		runID:   uuid.NewString(),
	}
	if cfg.Format == config.FormatTSV {
		c.pattern = corpus.NewFilenamePattern(cfg.FilenamePrefix)
	}
	return c
}

// SetProber enables metadata probing of copied audio. Only used when a
// catalog is attached.
func (c *Converter) SetProber(p MetadataProber) {
	c.probe = p
}

func (c *Converter) RunID() string {
	return c.runID
}

// IndexPath is where the index for split is expected.
func (c *Converter) IndexPath(split string) string {
	if c.cfg.Format == config.FormatTSV {
		return filepath.Join(c.cfg.SourceDir, split+"-"+c.cfg.TSVVariant+".tsv")
	}
	return filepath.Join(c.cfg.SourceDir, split, transcriptsFile)
}

// Run converts every configured split. Problems are logged and counted,
// never returned.
func (c *Converter) Run(ctx context.Context) Summary {
	c.log.Info().
		Str("run_id", c.runID).
		Str("format", c.cfg.Format).
		Str("source", c.cfg.SourceDir).
		Str("target", c.cfg.TargetDir).
		Strs("splits", c.cfg.Splits).
		Msg("Conversion started")

	sum := Summary{RunID: c.runID}
	for i, split := range c.cfg.Splits {
		sum.Splits = append(sum.Splits, c.runSplit(ctx, split, i == 0))
	}

	c.log.Info().Str("run_id", c.runID).Int64("written", sum.Written()).Msg("Conversion complete")
	return sum
}

func (c *Converter) runSplit(ctx context.Context, split string, primary bool) *SplitStats {
	start := time.Now()
	st := &SplitStats{Split: split, Index: c.IndexPath(split)}
	log := c.log.With().Str("split", split).Logger()

	if _, err := os.Stat(st.Index); err != nil {
		st.Skipped = true
		lvl := zerolog.WarnLevel
		if primary {
			lvl = zerolog.ErrorLevel
		}
		log.WithLevel(lvl).Err(err).Str("index", st.Index).Msg("Index file missing, split skipped")
		return st
	}

	outDir := filepath.Join(c.cfg.TargetDir, split)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", outDir).Msg("Cannot create output dir, split skipped")
		st.Skipped = true
		return st
	}

	log.Info().Str("index", st.Index).Str("output", outDir).Msg("Processing split")

	sc := &splitRun{
		Converter: c,
		ctx:       ctx,
		split:     split,
		log:       log,
		stats:     st,
		writer:    corpus.NewWriter(outDir, c.cfg.DuplicatePolicy),
	}

	var err error
	switch c.cfg.Format {
	case config.FormatTSV:
		sc.audioDir = filepath.Join(c.cfg.SourceDir, c.cfg.TSVAudioDir)
		err = scanner.ScanTSV(st.Index, sc.tsvRow)
	default:
		sc.audioDir = c.transcriptAudioDir(log, split)
		err = scanner.ScanTranscripts(st.Index, sc.transcriptRow)
	}
	if err != nil {
		if errors.Is(err, scanner.ErrIndexNotFound) {
			st.Skipped = true
		}
		log.Error().Err(err).Msg("Reading index failed")
	}

	st.Elapsed = time.Since(start)
	st.log(log)
	return st
}

// transcriptAudioDir decides once per split whether transcripts rows get
// audio. An empty result disables the per-row lookup.
func (c *Converter) transcriptAudioDir(log zerolog.Logger, split string) string {
	dir := filepath.Join(c.cfg.SourceDir, split)
	has, err := audio.HasAudioFiles(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Cannot list audio dir, text only")
		return ""
	}
	if !has {
		log.Info().Str("dir", dir).Msg("No audio files found, text only")
		return ""
	}
	return dir
}

// splitRun is the per-split state threaded through row handling.
type splitRun struct {
	*Converter
	ctx      context.Context
	split    string
	log      zerolog.Logger
	stats    *SplitStats
	writer   *corpus.Writer
	audioDir string
}

func (r *splitRun) transcriptRow(row scanner.Row) error {
	r.stats.Rows++
	if row.Err != nil {
		r.stats.Malformed++
		r.log.Warn().Int("line", row.Line).Str("raw", row.Key).Msg("Malformed line skipped")
		return nil
	}

	id, ok := corpus.ParseEmbeddedID(row.Key)
	if !ok {
		r.stats.Unmatched++
		r.log.Warn().Int("line", row.Line).Str("id", row.Key).Msg("Cannot extract speaker/name from id")
		return nil
	}

	var locate func() (string, bool)
	if r.audioDir != "" {
		locate = func() (string, bool) {
			return audio.FindSource(r.audioDir, row.Key)
		}
	}
	r.emit(row, id, locate)
	return nil
}

func (r *splitRun) tsvRow(row scanner.Row) error {
	r.stats.Rows++
	if row.Err != nil {
		r.stats.Malformed++
		r.log.Warn().Int("line", row.Line).Err(row.Err).Msg("Malformed row skipped")
		return nil
	}

	filename := filepath.Base(row.Key)
	id, _, ok := r.pattern.Match(filename)
	if !ok {
		r.stats.Unmatched++
		r.log.Warn().Int("line", row.Line).Str("file", filename).Msg("Cannot extract speaker/name from filename")
		return nil
	}

	r.emit(row, id, func() (string, bool) {
		p := filepath.Join(r.audioDir, filename)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, true
		}
		return p, false
	})
	return nil
}

// emit writes the text, then copies audio if locate finds it. A nil
// locate means audio is disabled for the split.
func (r *splitRun) emit(row scanner.Row, id corpus.Identifier, locate func() (string, bool)) {
	base, dup, ok := r.writer.Reserve(id)
	if dup {
		r.stats.Duplicates++
		ev := r.log.Warn().Int("line", row.Line).Str("basename", id.Basename()).Str("policy", r.cfg.DuplicatePolicy)
		if !ok {
			ev.Msg("Duplicate basename, row skipped")
			return
		}
		ev.Str("output", base).Msg("Duplicate basename")
	}

	textPath, err := r.writer.WriteText(base, row.Text)
	if err != nil {
		r.stats.Failed++
		r.log.Error().Err(err).Int("line", row.Line).Msg("Writing text failed")
		return
	}
	r.stats.Written++
	r.log.Info().Str("path", textPath).Msg("Text created")

	rec := &db.ConvertedFile{
		RunID:        r.runID,
		CorpusFormat: r.cfg.Format,
		Split:        r.split,
		Basename:     base,
		SpeakerID:    id.SpeakerID,
		Name:         id.Name,
		SourceKey:    row.Key,
		TextPath:     textPath,
		Transcript:   row.Text,
	}

	if locate != nil {
		src, found := locate()
		if !found {
			r.stats.AudioMissing++
			r.log.Warn().Int("line", row.Line).Str("key", row.Key).Str("expected", src).Msg("Audio file not found")
		} else if dst, err := r.writer.CopyAudio(src, base); err != nil {
			r.stats.Failed++
			r.log.Error().Err(err).Int("line", row.Line).Msg("Copying audio failed")
		} else {
			r.stats.AudioCopied++
			r.log.Info().Str("src", src).Str("dst", dst).Msg("Audio copied")
			rec.AudioPath = dst
		}
	}

	r.record(rec)
}

func (r *splitRun) record(rec *db.ConvertedFile) {
	if r.catalog == nil {
		return
	}

	if rec.AudioPath != "" {
		r.describeAudio(rec)
	}

	if err := r.catalog.Record(r.ctx, rec); err != nil {
		r.stats.CatalogErrors++
		r.log.Warn().Err(err).Str("basename", rec.Basename).Msg("Catalog record failed")
		return
	}
	r.stats.Recorded++
}

// describeAudio fills the digest and, when probing is on, stream properties.
// Failures only leave the fields empty.
func (r *splitRun) describeAudio(rec *db.ConvertedFile) {
	digest, err := audio.DigestFile(rec.AudioPath)
	if err != nil {
		r.log.Warn().Err(err).Str("path", rec.AudioPath).Msg("Hashing audio failed")
	} else {
		rec.AudioHash = digest.MD5
		rec.AudioBytes = digest.Size
	}

	if r.probe == nil {
		return
	}
	meta, err := r.probe(r.ctx, rec.AudioPath)
	if err != nil {
		r.log.Warn().Err(err).Str("path", rec.AudioPath).Msg("Probing audio failed")
		return
	}
	rec.DurationSec = meta.DurationSec
	rec.SampleRate = meta.SampleRate
	rec.Channels = meta.Channels
	rec.MetadataJSON = meta.ToJSON()
}
