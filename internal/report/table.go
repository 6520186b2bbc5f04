package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

// normalizeHeader 规范化表头：空列名 -> "Unnamed: i"，重复列名 -> "X.1", "X.2"；空白原样保留
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				next := fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[next]; !taken {
					seen[base] = n
					name = next
					break
				}
			}
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// parseCell 单元格文本推断类型：空 -> nil，整数 -> int64，小数 -> float64，其余为字符串
func parseCell(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if looksNumeric(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return text
}

// looksNumeric 排除 "NaN"、"Inf"、十六进制等 ParseFloat 也能接受的写法
func looksNumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}

// buildReport 由表头与数据行组装报表；短行补空，长行视为格式错误
func buildReport(source string, records [][]string) (*model.Report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformed)
	}

	columns := normalizeHeader(records[0])
	rows := make([]model.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) > len(columns) {
			if !blankTail(record[len(columns):]) {
				return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrMalformed, i+2, len(record), len(columns))
			}
		}
		row := make(model.Row, len(columns))
		for j, col := range columns {
			if j < len(record) {
				row[col] = parseCell(record[j])
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}

	return &model.Report{
		Source:  source,
		Columns: columns,
		Rows:    rows,
	}, nil
}

func blankTail(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
