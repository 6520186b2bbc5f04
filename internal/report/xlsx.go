package report

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

// ParseXLSX 读取工作簿中的第一个工作表，首行为表头
func ParseXLSX(wb *excelize.File, source string) (*model.Report, error) {
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformed)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformed, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMalformed, sheets[0])
	}

	// excelize 会裁掉行尾空单元格，表头按最宽的行补齐
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])
	rows[0] = header

	return buildReport(source, rows)
}

// ReadXLSX 从流中读取工作簿
func ReadXLSX(r io.Reader, source string) (*model.Report, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrMalformed, err)
	}
	defer func() { _ = wb.Close() }()

	return ParseXLSX(wb, source)
}

// LoadXLSX 从文件读取工作簿
func LoadXLSX(path string) (*model.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadXLSX(f, path)
}
