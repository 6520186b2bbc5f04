//go:build linux

package report

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedAt Linux 下没有可移植的创建时间，使用 inode 变更时间
func CreatedAt(_ string, info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
