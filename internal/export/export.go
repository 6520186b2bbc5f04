// Package export 将当前视图（过滤后的报表）导出为 xlsx
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/status"
)

// ErrNothingToExport 主报表缺失
var ErrNothingToExport = errors.New("no report available to export")

const summarySheet = "Resumen"

var sheetNames = map[model.ReportKind]string{
	model.ReportDocs:      "Docs",
	model.ReportFlujo:     "Flujo",
	model.ReportHistorial: "Historial",
}

// Workbook 生成工作簿：汇总页 + 每份可用报表一页
func Workbook(set dashboard.ReportSet, selected string) (*excelize.File, error) {
	if set.Docs == nil {
		return nil, ErrNothingToExport
	}

	filtered := set.Filtered(selected)
	view := dashboard.Build(set, selected)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummary(f, view, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	for _, kind := range model.ReportKinds {
		r := filtered.Get(kind)
		if r == nil {
			continue
		}
		name := sheetNames[kind]
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := writeReport(f, name, r, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write 生成工作簿并写入 w
func Write(w io.Writer, set dashboard.ReportSet, selected string) error {
	f, err := Workbook(set, selected)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, view dashboard.View, headerStyle int) error {
	rows := [][]interface{}{
		{"Contrato", view.Selected},
	}
	for _, m := range view.General.Metrics {
		rows = append(rows, []interface{}{m.Label, m.Value})
	}
	rows = append(rows, []interface{}{string(status.InProgress), view.General.Counts.InProgress})
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{status.Column, "Cantidad"})
	headerRow := len(rows)
	for _, s := range view.General.StatusChart {
		rows = append(rows, []interface{}{s.Name, s.Count})
	}

	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(summarySheet, headerRow, headerRow, headerStyle); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "A", 28)
}

func writeReport(f *excelize.File, sheet string, r *model.Report, headerStyle int) error {
	header := make([]interface{}, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	_, rows := r.Table()
	for i, row := range rows {
		values := make([]interface{}, len(row))
		copy(values, row)
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
