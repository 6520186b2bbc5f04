// Package status 把自由文本的状态归为 Aprobado / Rechazado / En Proceso
package status

import (
	"strings"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

// Category 简化状态
type Category string

const (
	Approved   Category = "Aprobado"
	Rejected   Category = "Rechazado"
	InProgress Category = "En Proceso"
)

// Categories 固定的展示顺序
var Categories = []Category{Approved, Rejected, InProgress}

const (
	// Column 原始状态列
	Column = "Estatus"
	// SimpleColumn 派生的简化状态列
	SimpleColumn = "Status_Simple"
)

var (
	approvedKeywords = []string{"aprobado", "proceed"}
	rejectedKeywords = []string{"rechazado", "no proceder"}
)

// Classify 先判断通过，再判断驳回，其余均为处理中
func Classify(v any) Category {
	s := strings.ToLower(model.Text(v))
	switch {
	case containsAny(s, approvedKeywords):
		return Approved
	case containsAny(s, rejectedKeywords):
		return Rejected
	default:
		return InProgress
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Annotate 返回追加 Status_Simple 列的新报表；缺少状态列时全部为处理中
func Annotate(r *model.Report, column string) *model.Report {
	if r == nil {
		return nil
	}
	return r.WithColumn(SimpleColumn, func(row model.Row) any {
		return string(Classify(row[column]))
	})
}

// Counts 各类别计数
type Counts struct {
	Total      int `json:"total"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
	InProgress int `json:"inProgress"`
}

// Get 指定类别的计数
func (c Counts) Get(cat Category) int {
	switch cat {
	case Approved:
		return c.Approved
	case Rejected:
		return c.Rejected
	default:
		return c.InProgress
	}
}

// Count 统计报表中每个类别的行数
func Count(r *model.Report, column string) Counts {
	var c Counts
	if r == nil {
		return c
	}
	for _, row := range r.Rows {
		c.Total++
		switch Classify(row[column]) {
		case Approved:
			c.Approved++
		case Rejected:
			c.Rejected++
		default:
			c.InProgress++
		}
	}
	return c
}
