package report

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV 解析逗号分隔文本，首行为表头
func ParseCSV(r io.Reader, source string) (*model.Report, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, record := range records {
		for _, field := range record {
			if !utf8.ValidString(field) {
				return nil, fmt.Errorf("%w: line %d is not valid UTF-8", ErrMalformed, i+1)
			}
		}
	}

	return buildReport(source, records)
}

// LoadCSV 从文件读取 CSV 报表
func LoadCSV(path string) (*model.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f, path)
}
