package report

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	extCSV  = ".csv"
	extXLSX = ".xlsx"

	// lockPrefix Office 打开文件时生成的锁文件前缀
	lockPrefix = "~$"
)

// Candidate 匹配关键字的候选文件
type Candidate struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
	Size    int64     `json:"size"`
}

// Ext 候选文件扩展名
func (c Candidate) Ext() string {
	return filepath.Ext(c.Name)
}

// TimestampFunc 返回文件的创建时间
type TimestampFunc func(path string, info fs.FileInfo) time.Time

// Accepted 文件名是否可作为 keyword 报表的候选
func Accepted(name, keyword string) bool {
	if strings.HasPrefix(name, lockPrefix) || strings.HasPrefix(name, ".") {
		return false
	}
	if !strings.Contains(name, keyword) {
		return false
	}
	return strings.HasSuffix(name, extCSV) || strings.HasSuffix(name, extXLSX)
}

// Candidates 列出目录中匹配关键字的候选文件（按文件名字典序）
func Candidates(dir, keyword string, stamp TimestampFunc) ([]Candidate, error) {
	if stamp == nil {
		stamp = CreatedAt
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !Accepted(name, keyword) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := entry.Info()
		if err == nil && entry.Type()&fs.ModeSymlink != 0 {
			info, err = os.Stat(path)
		}
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, Candidate{
			Name:    name,
			Path:    path,
			Created: stamp(path, info),
			Size:    info.Size(),
		})
	}
	return out, nil
}

// Newest 创建时间最新的候选；时间相同时保留先出现的
func Newest(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Created.After(best.Created) {
			best = c
		}
	}
	return best, true
}
