package report

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var baseTime = time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)

// stampByName 按文件名返回固定的创建时间，未登记的文件视为最早
func stampByName(times map[string]time.Time) TimestampFunc {
	return func(path string, _ fs.FileInfo) time.Time {
		if ts, ok := times[filepath.Base(path)]; ok {
			return ts
		}
		return time.Time{}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, wb.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, wb.SaveAs(path))
	return path
}
