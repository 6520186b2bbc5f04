//go:build windows

package report

import (
	"io/fs"
	"syscall"
	"time"
)

// CreatedAt Windows 使用文件创建时间
func CreatedAt(_ string, info fs.FileInfo) time.Time {
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
