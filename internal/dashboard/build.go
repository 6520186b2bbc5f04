// Package dashboard 由磁盘上的报表与所选合同推导看板视图
package dashboard

import (
	"fmt"
	"sort"

	"github.com/Dvmian56/dashboard-control-anglo/internal/contract"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/status"
)

// DetailColumns 明细表展示的列（缺失的列跳过）
var DetailColumns = []string{"No. de documento", "Título", status.Column, "Revisión"}

// Keywords 三类报表的文件名关键字
type Keywords struct {
	Docs      string `json:"docs"`
	Flujo     string `json:"flujo"`
	Historial string `json:"historial"`
}

// DefaultKeywords 默认关键字
func DefaultKeywords() Keywords {
	return Keywords{Docs: "Docs", Flujo: "Flujo", Historial: "Historial"}
}

// For 报表类型对应的关键字
func (k Keywords) For(kind model.ReportKind) string {
	switch kind {
	case model.ReportFlujo:
		return k.Flujo
	case model.ReportHistorial:
		return k.Historial
	default:
		return k.Docs
	}
}

// ReportSet 一次加载得到的三份报表；nil 表示未找到
type ReportSet struct {
	Keywords  Keywords
	Docs      *model.Report
	Flujo     *model.Report
	Historial *model.Report
}

// Get 按类型取报表
func (s ReportSet) Get(kind model.ReportKind) *model.Report {
	switch kind {
	case model.ReportFlujo:
		return s.Flujo
	case model.ReportHistorial:
		return s.Historial
	default:
		return s.Docs
	}
}

// Contracts 合同选项（来自 Docs 报表，过滤前）
func (s ReportSet) Contracts() []string {
	return contract.Options(contract.Derive(s.Docs))
}

// Filtered 派生合同标签与简化状态后按 selected 过滤；输入不变
func (s ReportSet) Filtered(selected string) ReportSet {
	if selected == "" {
		selected = contract.All
	}
	docs := contract.Derive(s.Docs)
	docs = contract.Filter(docs, selected)
	docs = status.Annotate(docs, status.Column)

	return ReportSet{
		Keywords:  s.Keywords,
		Docs:      docs,
		Flujo:     contract.Filter(s.Flujo, selected),
		Historial: contract.Filter(s.Historial, selected),
	}
}

// WaitingMessage 主报表缺失时的提示
func WaitingMessage(k Keywords) string {
	return fmt.Sprintf("⚠️ Esperando archivo principal... Sube el reporte que contenga '%s' en el nombre.", k.Docs)
}

// Build 由报表集合与所选合同生成视图，不修改输入
func Build(set ReportSet, selected string) View {
	if selected == "" {
		selected = contract.All
	}

	k := set.Keywords
	view := View{
		Selected:  selected,
		Contracts: []string{contract.All},
		Tabs: []Tab{
			{Key: string(model.ReportDocs), Title: fmt.Sprintf("📊 1. General (%s)", k.Docs)},
			{Key: string(model.ReportFlujo), Title: fmt.Sprintf("⏳ 2. Pendientes (%s)", k.Flujo)},
			{Key: string(model.ReportHistorial), Title: "📈 3. Historial"},
		},
	}

	if set.Docs == nil {
		view.Message = WaitingMessage(k)
		return view
	}

	view.Ready = true
	view.Contracts = set.Contracts()

	filtered := set.Filtered(selected)
	view.General = buildGeneral(filtered.Docs)
	view.Flujo = buildPanel(filtered.Flujo, "Control de Pendientes",
		fmt.Sprintf("ℹ️ Sube un archivo con nombre '%s' para ver los pendientes.", k.Flujo))
	view.Historial = buildPanel(filtered.Historial, "Análisis Histórico",
		fmt.Sprintf("ℹ️ Sube un archivo con nombre '%s' para ver análisis.", k.Historial))

	return view
}

func buildGeneral(docs *model.Report) *General {
	counts := status.Count(docs, status.Column)

	cols, rows := docs.Table(DetailColumns...)
	return &General{
		Metrics: []Metric{
			{Key: "total", Label: "Total Documentos", Value: counts.Total},
			{Key: "approved", Label: "✅ Aprobados", Value: counts.Approved},
			{Key: "rejected", Label: "❌ Rechazados", Value: counts.Rejected},
		},
		Counts:        counts,
		StatusChart:   distribution(docs, status.Column),
		CategoryChart: categoryHistogram(counts),
		Detail:        Table{Columns: cols, Rows: rows},
	}
}

func buildPanel(r *model.Report, title, missing string) Panel {
	if r == nil {
		return Panel{Message: missing}
	}
	cols, rows := r.Table()
	return Panel{
		Available: true,
		Title:     title,
		Table:     &Table{Columns: cols, Rows: rows},
	}
}

// distribution 按列值计数，空值不计，数量降序、同数量按名称
func distribution(r *model.Report, column string) []Slice {
	counts := make(map[string]int)
	for _, row := range r.Rows {
		v := row[column]
		if v == nil {
			continue
		}
		counts[model.Text(v)]++
	}

	out := make([]Slice, 0, len(counts))
	for name, n := range counts {
		out = append(out, Slice{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func categoryHistogram(c status.Counts) []Slice {
	out := make([]Slice, 0, len(status.Categories))
	for _, cat := range status.Categories {
		out = append(out, Slice{Name: string(cat), Count: c.Get(cat)})
	}
	return out
}
