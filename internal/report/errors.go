package report

import "errors"

var (
	// ErrNoCandidate 目录中没有匹配关键字的报表文件
	ErrNoCandidate = errors.New("no report file matches keyword")
	// ErrUnsupportedFormat 扩展名不在可接受范围内
	ErrUnsupportedFormat = errors.New("unsupported report format")
	// ErrMalformed 文件内容无法解析为表格
	ErrMalformed = errors.New("malformed report")
)
