//go:build !linux && !darwin && !windows

package report

import (
	"io/fs"
	"time"
)

// CreatedAt 其他平台退化为修改时间
func CreatedAt(_ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
