package corpus

import (
	"regexp"
	"strings"
)

// Identifier names an utterance in the output layout.
type Identifier struct {
	SpeakerID string
	Name      string
}

// Basename is the shared stem of the .wav and .normalized.txt outputs.
func (id Identifier) Basename() string {
	return id.SpeakerID + "_" + id.Name
}

// ParseEmbeddedID extracts speaker and name from a LibriTTS-style id
// "{speaker}_{book}_{segment}". Name is book and segment joined without a
// separator; segments past the third are ignored.
func ParseEmbeddedID(raw string) (Identifier, bool) {
	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return Identifier{}, false
	}
	id := Identifier{SpeakerID: parts[0], Name: parts[1] + parts[2]}
	if id.SpeakerID == "" || id.Name == "" {
		return Identifier{}, false
	}
	return id, true
}

// FilenamePattern matches "{prefix}-{speaker}-{order}-{name}.wav".
type FilenamePattern struct {
	re *regexp.Regexp
}

func NewFilenamePattern(prefix string) *FilenamePattern {
	return &FilenamePattern{
		re: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-([^-]+)-([^-]+)-([^.]+)\.wav$`),
	}
}

// Match returns the identifier and the order component, which callers
// currently discard.
func (p *FilenamePattern) Match(filename string) (Identifier, string, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Identifier{}, "", false
	}
	return Identifier{SpeakerID: m[1], Name: m[3]}, m[2], true
}
