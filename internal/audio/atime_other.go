//go:build !linux

package audio

import (
	"os"
	"time"
)

func accessTime(_ os.FileInfo, fallback time.Time) time.Time {
	return fallback
}
