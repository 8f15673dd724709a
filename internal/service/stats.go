package service

import (
	"time"

	"github.com/rs/zerolog"
)

// SplitStats counts row outcomes for one split.
type SplitStats struct {
	Split         string        `json:"split"`
	Index         string        `json:"index"`
	Skipped       bool          `json:"skipped"` // index missing, nothing done
	Rows          int64         `json:"rows"`
	Written       int64         `json:"written"`
	AudioCopied   int64         `json:"audio_copied"`
	AudioMissing  int64         `json:"audio_missing"`
	Malformed     int64         `json:"malformed"`
	Unmatched     int64         `json:"unmatched"`
	Duplicates    int64         `json:"duplicates"`
	Failed        int64         `json:"failed"`
	Recorded      int64         `json:"recorded"`
	CatalogErrors int64         `json:"catalog_errors"`
	Elapsed       time.Duration `json:"elapsed"`
}

func (s *SplitStats) log(log zerolog.Logger) {
	log.Info().
		Str("split", s.Split).
		Int64("rows", s.Rows).
		Int64("written", s.Written).
		Int64("audio_copied", s.AudioCopied).
		Int64("audio_missing", s.AudioMissing).
		Int64("malformed", s.Malformed).
		Int64("unmatched", s.Unmatched).
		Int64("duplicates", s.Duplicates).
		Int64("failed", s.Failed).
		Int64("recorded", s.Recorded).
		Str("elapsed", s.Elapsed.Round(time.Millisecond).String()).
		Msg("Split complete")
}

// Summary is the outcome of one Run.
type Summary struct {
	RunID  string        `json:"run_id"`
	Splits []*SplitStats `json:"splits"`
}

// Split returns the stats for name, or nil if it was not configured.
func (s Summary) Split(name string) *SplitStats {
	for _, st := range s.Splits {
		if st.Split == name {
			return st
		}
	}
	return nil
}

// Written is the number of text files written across all splits.
func (s Summary) Written() int64 {
	var n int64
	for _, st := range s.Splits {
		n += st.Written
	}
	return n
}
