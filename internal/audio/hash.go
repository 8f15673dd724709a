package audio

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// Digest identifies copied audio by content. Equal digests across runs
// mean the same bytes were copied again.
type Digest struct {
	MD5  string
	Size int64
}

// DigestFile hashes path in a single pass and counts its bytes.
func DigestFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer f.Close()

	h := md5.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Digest{}, err
	}
	return Digest{MD5: hex.EncodeToString(h.Sum(nil)), Size: n}, nil
}
