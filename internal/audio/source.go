package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extensions are probed in this order when looking up a source file.
var Extensions = []string{".wav", ".flac", ".mp3"}

// FindSource returns the first existing {id}{ext} file in dir.
func FindSource(dir, id string) (string, bool) {
	for _, ext := range Extensions {
		p := filepath.Join(dir, id+ext)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// HasAudioFiles reports whether dir directly contains at least one regular
// file with a known audio extension. Symlinks count when their target is a
// regular file, as in FindSource. A missing dir has none.
func HasAudioFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	for _, e := range entries {
		if e.IsDir() || !hasAudioExt(e.Name()) {
			continue
		}
		if e.Type().IsRegular() {
			return true, nil
		}
		if fi, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && fi.Mode().IsRegular() {
			return true, nil
		}
	}
	return false, nil
}

func hasAudioExt(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Copy copies src to dst, replacing dst, and carries over the permission
// bits and access/modification times of src.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	if dfi, err := os.Stat(dst); err == nil && os.SameFile(fi, dfi) {
		return nil
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	// O_CREATE only applies the mode to new files
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}
	mtime := fi.ModTime()
	return os.Chtimes(dst, accessTime(fi, mtime), mtime)
}
