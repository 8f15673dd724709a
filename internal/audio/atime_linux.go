package audio

import (
	"os"
	"syscall"
	"time"
)

func accessTime(fi os.FileInfo, fallback time.Time) time.Time {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return fallback
}
