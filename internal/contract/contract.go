// Package contract 合同标签推导与按合同过滤
package contract

import (
	"sort"
	"strings"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

const (
	// All 不过滤的选项
	All = "Todos"
	// General 报表缺少合同列时的默认标签
	General = "General"

	// SourceColumn 原始合同列
	SourceColumn = "Contrato"
	// LabelColumn 派生的短合同列
	LabelColumn = "Contrato_Corto"

	// columnHint 过滤时用于识别合同列的子串（不区分大小写）
	columnHint = "contrato"
	separator  = "-"
)

// Label 取第一个 "-" 之前的部分
func Label(raw string) string {
	head, _, _ := strings.Cut(raw, separator)
	return head
}

// Derive 返回追加 Contrato_Corto 列的新报表
func Derive(r *model.Report) *model.Report {
	if r == nil {
		return nil
	}
	if !r.HasColumn(SourceColumn) {
		return r.WithColumn(LabelColumn, func(model.Row) any { return General })
	}
	return r.WithColumn(LabelColumn, func(row model.Row) any {
		return Label(model.Text(row[SourceColumn]))
	})
}

// Options 选择器选项："Todos" + 排序去重后的标签
func Options(r *model.Report) []string {
	out := []string{All}
	if r == nil {
		return out
	}

	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, row := range r.Rows {
		label := model.Text(row[LabelColumn])
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return append(out, labels...)
}

// Column 第一个名称包含 "contrato" 的列
func Column(r *model.Report) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, c := range r.Columns {
		if strings.Contains(strings.ToLower(c), columnHint) {
			return c, true
		}
	}
	return "", false
}

// Filter 保留合同列文本包含 selected 的行；空报表、"Todos"、无合同列时原样返回
func Filter(r *model.Report, selected string) *model.Report {
	if r.Empty() || selected == All {
		return r
	}

	col, ok := Column(r)
	if !ok {
		return r
	}

	rows := make([]model.Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		v := row[col]
		if v == nil {
			continue
		}
		if strings.Contains(model.Text(v), selected) {
			rows = append(rows, row)
		}
	}
	return r.WithRows(rows)
}
