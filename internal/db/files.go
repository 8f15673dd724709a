package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ConvertedFile is one output pair as recorded in the catalog. Audio
// fields are empty when no audio was copied for the row.
type ConvertedFile struct {
	RunID        string
	CorpusFormat string
	Split        string
	Basename     string
	SpeakerID    string
	Name         string
	SourceKey    string
	TextPath     string
	AudioPath    string
	AudioHash    string
	AudioBytes   int64
	DurationSec  float64
	SampleRate   int
	Channels     int
	MetadataJSON string // full ffprobe result, empty when not probed
	Transcript   string
}

const upsertConverted = `
	INSERT INTO converted_utterances
	(run_id, corpus_format, split, basename, speaker_id, name, source_key,
	 text_path, audio_path, audio_hash, audio_bytes, duration_sec, sample_rate, channels,
	 metadata_json, transcript)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
	 run_id = VALUES(run_id), speaker_id = VALUES(speaker_id), name = VALUES(name),
	 source_key = VALUES(source_key), text_path = VALUES(text_path),
	 audio_path = VALUES(audio_path), audio_hash = VALUES(audio_hash),
	 audio_bytes = VALUES(audio_bytes), duration_sec = VALUES(duration_sec),
	 sample_rate = VALUES(sample_rate), channels = VALUES(channels),
	 metadata_json = VALUES(metadata_json), transcript = VALUES(transcript)`

// Record upserts f keyed by (corpus_format, split, basename), so the
// catalog follows the files on disk when a basename is written again.
func (d *DB) Record(ctx context.Context, f *ConvertedFile) error {
	_, err := d.conn.ExecContext(ctx, upsertConverted,
		f.RunID, f.CorpusFormat, f.Split, f.Basename, f.SpeakerID, f.Name, f.SourceKey,
		f.TextPath, nullString(f.AudioPath), nullString(f.AudioHash), nullInt64(f.AudioBytes),
		nullFloat(f.DurationSec), nullInt(f.SampleRate), nullInt(f.Channels),
		nullString(f.MetadataJSON), f.Transcript)
	if err != nil {
		return fmt.Errorf("record %s/%s: %w", f.Split, f.Basename, err)
	}
	return nil
}

func (d *DB) CountByRun(ctx context.Context, runID string) (int64, error) {
	var count int64
	err := d.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM converted_utterances WHERE run_id = ?", runID).Scan(&count)
	return count, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullInt(i int) sql.NullInt64 {
	return nullInt64(int64(i))
}

func nullInt64(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}
