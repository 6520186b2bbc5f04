package model

import (
	"fmt"
	"strconv"
)

// Row 报表中的一行：列名 -> 单元格值（string / int64 / float64 / nil）
type Row map[string]any

// Report 从单个文件加载的表格报表
type Report struct {
	Source  string   `json:"source"`  // 来源文件路径
	Columns []string `json:"columns"` // 有序列名
	Rows    []Row    `json:"rows"`
}

// Len 行数（nil 报表视为 0）
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty 报表是否为空
func (r *Report) Empty() bool {
	return r.Len() == 0
}

// HasColumn 是否包含指定列
func (r *Report) HasColumn(name string) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRows 返回共享列定义、替换行集合的新报表
func (r *Report) WithRows(rows []Row) *Report {
	cols := make([]string, len(r.Columns))
	copy(cols, r.Columns)
	return &Report{
		Source:  r.Source,
		Columns: cols,
		Rows:    rows,
	}
}

// WithColumn 返回追加（或覆盖）一列后的新报表，原报表不变
func (r *Report) WithColumn(name string, value func(Row) any) *Report {
	cols := make([]string, 0, len(r.Columns)+1)
	cols = append(cols, r.Columns...)
	if !r.HasColumn(name) {
		cols = append(cols, name)
	}

	rows := make([]Row, len(r.Rows))
	for i, row := range r.Rows {
		next := make(Row, len(row)+1)
		for k, v := range row {
			next[k] = v
		}
		next[name] = value(row)
		rows[i] = next
	}

	return &Report{
		Source:  r.Source,
		Columns: cols,
		Rows:    rows,
	}
}

// Table 按给定列顺序导出为二维数组（缺失列跳过）
func (r *Report) Table(columns ...string) ([]string, [][]any) {
	if r == nil {
		return []string{}, [][]any{}
	}
	if len(columns) == 0 {
		columns = r.Columns
	}
	present := make([]string, 0, len(columns))
	for _, c := range columns {
		if r.HasColumn(c) {
			present = append(present, c)
		}
	}

	out := make([][]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := make([]any, len(present))
		for i, c := range present {
			line[i] = row[c]
		}
		out = append(out, line)
	}
	return present, out
}

// Text 单元格的文本形式，所有子串匹配都基于它
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(v)
	}
}
