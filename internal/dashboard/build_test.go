package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dvmian56/dashboard-control-anglo/internal/contract"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/status"
)

func sampleDocs() *model.Report {
	return &model.Report{
		Source:  "Reporte_Docs.xlsx",
		Columns: []string{"No. de documento", "Título", "Estatus", "Revisión", "Contrato"},
		Rows: []model.Row{
			{"No. de documento": "D-1", "Título": "Plano", "Estatus": "Aprobado", "Revisión": int64(1), "Contrato": "CP100-EPC-01"},
			{"No. de documento": "D-2", "Título": "Memoria", "Estatus": "Rechazado", "Revisión": int64(0), "Contrato": "CP200-B"},
			{"No. de documento": "D-3", "Título": "Informe", "Estatus": "En revisión", "Revisión": int64(2), "Contrato": "CP100-A"},
			{"No. de documento": "D-4", "Título": "Listado", "Estatus": "Aprobado", "Revisión": int64(3), "Contrato": "CP100-A"},
		},
	}
}

func sampleFlujo() *model.Report {
	return &model.Report{
		Columns: []string{"Documento", "Contrato", "Paso"},
		Rows: []model.Row{
			{"Documento": "D-3", "Contrato": "CP100-A", "Paso": "Revisión"},
			{"Documento": "D-9", "Contrato": "CP200-B", "Paso": "Firma"},
		},
	}
}

func TestBuildWaitingWhenDocsMissing(t *testing.T) {
	view := Build(ReportSet{Keywords: DefaultKeywords(), Flujo: sampleFlujo()}, "CP100")

	assert.False(t, view.Ready)
	assert.Contains(t, view.Message, "'Docs'")
	assert.Nil(t, view.General)
	assert.False(t, view.Flujo.Available)
	assert.Equal(t, []string{contract.All}, view.Contracts)
}

func TestBuildAll(t *testing.T) {
	set := ReportSet{Keywords: DefaultKeywords(), Docs: sampleDocs(), Flujo: sampleFlujo()}
	view := Build(set, "")

	require.True(t, view.Ready)
	assert.Equal(t, contract.All, view.Selected)
	assert.Equal(t, []string{contract.All, "CP100", "CP200"}, view.Contracts)
	require.Len(t, view.Tabs, 3)

	g := view.General
	require.NotNil(t, g)
	assert.Equal(t, status.Counts{Total: 4, Approved: 2, Rejected: 1, InProgress: 1}, g.Counts)
	assert.Equal(t, []Metric{
		{Key: "total", Label: "Total Documentos", Value: 4},
		{Key: "approved", Label: "✅ Aprobados", Value: 2},
		{Key: "rejected", Label: "❌ Rechazados", Value: 1},
	}, g.Metrics)
	assert.Equal(t, []Slice{{"Aprobado", 2}, {"En revisión", 1}, {"Rechazado", 1}}, g.StatusChart)
	assert.Equal(t, []Slice{{"Aprobado", 2}, {"Rechazado", 1}, {"En Proceso", 1}}, g.CategoryChart)
	assert.Equal(t, DetailColumns, g.Detail.Columns)
	assert.Len(t, g.Detail.Rows, 4)

	assert.True(t, view.Flujo.Available)
	assert.Equal(t, "Control de Pendientes", view.Flujo.Title)
	assert.Len(t, view.Flujo.Table.Rows, 2)

	assert.False(t, view.Historial.Available)
	assert.True(t, strings.HasPrefix(view.Historial.Message, "ℹ️"))
	assert.Contains(t, view.Historial.Message, "'Historial'")
}

func TestBuildFiltersEveryReport(t *testing.T) {
	set := ReportSet{Keywords: DefaultKeywords(), Docs: sampleDocs(), Flujo: sampleFlujo()}
	view := Build(set, "CP100")

	require.True(t, view.Ready)
	assert.Equal(t, "CP100", view.Selected)
	assert.Equal(t, []string{contract.All, "CP100", "CP200"}, view.Contracts)
	assert.Equal(t, status.Counts{Total: 3, Approved: 2, InProgress: 1}, view.General.Counts)
	assert.Len(t, view.Flujo.Table.Rows, 1)
	assert.Equal(t, "D-3", view.Flujo.Table.Rows[0][0])

	// 输入未被修改
	assert.Equal(t, 4, set.Docs.Len())
	assert.False(t, set.Docs.HasColumn(contract.LabelColumn))
}

func TestBuildDetailSkipsMissingColumns(t *testing.T) {
	docs := &model.Report{
		Columns: []string{"Título", "Estatus"},
		Rows:    []model.Row{{"Título": "A", "Estatus": "Aprobado"}},
	}
	view := Build(ReportSet{Keywords: DefaultKeywords(), Docs: docs}, contract.All)

	require.True(t, view.Ready)
	assert.Equal(t, []string{contract.All, contract.General}, view.Contracts)
	assert.Equal(t, []string{"Título", "Estatus"}, view.General.Detail.Columns)
}

func TestBuildEmptyDocs(t *testing.T) {
	docs := &model.Report{Columns: []string{"Contrato", "Estatus"}}
	view := Build(ReportSet{Keywords: DefaultKeywords(), Docs: docs}, "CP100")

	require.True(t, view.Ready)
	assert.Equal(t, 0, view.General.Counts.Total)
	assert.Empty(t, view.General.StatusChart)
}

func TestFilteredAddsDerivedColumns(t *testing.T) {
	set := ReportSet{Docs: sampleDocs()}
	out := set.Filtered("CP200")

	require.Equal(t, 1, out.Docs.Len())
	assert.Equal(t, "CP200", out.Docs.Rows[0][contract.LabelColumn])
	assert.Equal(t, "Rechazado", out.Docs.Rows[0][status.SimpleColumn])
	assert.Nil(t, out.Flujo)
}

func TestKeywordsFor(t *testing.T) {
	k := Keywords{Docs: "D", Flujo: "F", Historial: "H"}
	assert.Equal(t, "D", k.For(model.ReportDocs))
	assert.Equal(t, "F", k.For(model.ReportFlujo))
	assert.Equal(t, "H", k.For(model.ReportHistorial))
}
