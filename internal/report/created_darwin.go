//go:build darwin

package report

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedAt macOS 使用文件出生时间
func CreatedAt(_ string, info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return info.ModTime()
}
