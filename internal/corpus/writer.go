package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"corpus-converter/internal/audio"
	"corpus-converter/internal/config"
)

const (
	TextSuffix  = ".normalized.txt"
	AudioSuffix = ".wav"
)

// Writer materializes text/audio pairs into one split directory. It is
// not safe for concurrent use.
type Writer struct {
	dir    string
	policy string
	seen   map[string]int
}

func NewWriter(dir, policy string) *Writer {
	return &Writer{
		dir:    dir,
		policy: policy,
		seen:   make(map[string]int),
	}
}

// Reserve claims the output basename for id under the duplicate policy.
// ok is false when the row must be skipped. dup reports whether the
// basename was already produced earlier in this run.
func (w *Writer) Reserve(id Identifier) (basename string, dup, ok bool) {
	base := id.Basename()
	n := w.seen[base]
	w.seen[base] = n + 1

	if n == 0 {
		return base, false, true
	}

	switch w.policy {
	case config.DuplicateSkip:
		return "", true, false
	case config.DuplicateSuffix:
		for k := n + 1; ; k++ {
			candidate := base + "_" + strconv.Itoa(k)
			if _, taken := w.seen[candidate]; !taken {
				w.seen[candidate] = 1
				return candidate, true, true
			}
		}
	default:
		return base, true, true
	}
}

func (w *Writer) TextPath(basename string) string {
	return filepath.Join(w.dir, basename+TextSuffix)
}

func (w *Writer) AudioPath(basename string) string {
	return filepath.Join(w.dir, basename+AudioSuffix)
}

// WriteText writes text verbatim to {basename}.normalized.txt, replacing
// any previous content.
func (w *Writer) WriteText(basename, text string) (string, error) {
	p := w.TextPath(basename)
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write text %s: %w", p, err)
	}
	return p, nil
}

// CopyAudio copies src to {basename}.wav. The container is not converted:
// a .flac source still lands under the .wav name.
func (w *Writer) CopyAudio(src, basename string) (string, error) {
	p := w.AudioPath(basename)
	if err := audio.Copy(src, p); err != nil {
		return "", fmt.Errorf("copy audio %s -> %s: %w", src, p, err)
	}
	return p, nil
}
