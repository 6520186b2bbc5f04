package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
)

func docs() *model.Report {
	return &model.Report{
		Columns: []string{"No. de documento", "Contrato", "Estatus"},
		Rows: []model.Row{
			{"No. de documento": "D-1", "Contrato": "CP100-A", "Estatus": "Aprobado"},
			{"No. de documento": "D-2", "Contrato": "CP200-B", "Estatus": "Rechazado"},
			{"No. de documento": "D-3", "Contrato": "CP100-EPC-01", "Estatus": "En revisión"},
			{"No. de documento": "D-4", "Contrato": nil, "Estatus": "Aprobado"},
		},
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "CP100", Label("CP100-EPC-01"))
	assert.Equal(t, "CP200", Label("CP200"))
	assert.Equal(t, "", Label("-X"))
	assert.Equal(t, "", Label(""))
}

func TestDerive(t *testing.T) {
	src := docs()
	out := Derive(src)

	require.Equal(t, LabelColumn, out.Columns[len(out.Columns)-1])
	assert.Equal(t, "CP100", out.Rows[0][LabelColumn])
	assert.Equal(t, "CP200", out.Rows[1][LabelColumn])
	assert.Equal(t, "CP100", out.Rows[2][LabelColumn])
	assert.Equal(t, "", out.Rows[3][LabelColumn])
	assert.False(t, src.HasColumn(LabelColumn))
}

func TestDeriveWithoutContractColumn(t *testing.T) {
	src := &model.Report{
		Columns: []string{"Estatus"},
		Rows:    []model.Row{{"Estatus": "a"}, {"Estatus": "b"}},
	}
	out := Derive(src)
	for _, row := range out.Rows {
		assert.Equal(t, General, row[LabelColumn])
	}
	assert.Equal(t, []string{All, General}, Options(out))
}

func TestDeriveRequiresExactColumnName(t *testing.T) {
	src := &model.Report{
		Columns: []string{"Contrato "},
		Rows:    []model.Row{{"Contrato ": "CP100-A"}},
	}
	out := Derive(src)
	assert.Equal(t, General, out.Rows[0][LabelColumn])

	// 过滤按子串识别合同列，仍然生效
	assert.Equal(t, 1, Filter(out, "CP100").Len())
	assert.Equal(t, 0, Filter(out, "CP200").Len())
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []string{All, "CP100", "CP200"}, Options(Derive(docs())))
	assert.Equal(t, []string{All}, Options(nil))
}

func TestFilterAllReturnsInput(t *testing.T) {
	src := docs()
	assert.Same(t, src, Filter(src, All))
}

func TestFilterBySelection(t *testing.T) {
	src := &model.Report{
		Columns: []string{"Contrato"},
		Rows:    []model.Row{{"Contrato": "CP100-A"}, {"Contrato": "CP200-B"}},
	}
	out := Filter(src, "CP100")
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "CP100-A", out.Rows[0]["Contrato"])
	assert.Equal(t, 2, src.Len())
}

func TestFilterPreservesOrderAndSkipsEmpty(t *testing.T) {
	out := Filter(docs(), "CP100")
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "D-1", out.Rows[0]["No. de documento"])
	assert.Equal(t, "D-3", out.Rows[1]["No. de documento"])
}

func TestFilterIsCaseSensitiveOnValues(t *testing.T) {
	out := Filter(docs(), "cp100")
	assert.Equal(t, 0, out.Len())
}

func TestFilterUsesFirstMatchingColumn(t *testing.T) {
	src := &model.Report{
		Columns: []string{"Doc", "Tipo de CONTRATO", "Contrato"},
		Rows: []model.Row{
			{"Doc": "1", "Tipo de CONTRATO": "EPC", "Contrato": "CP100-A"},
			{"Doc": "2", "Tipo de CONTRATO": "EPCM", "Contrato": "CP200-A"},
		},
	}
	out := Filter(src, "CP100")
	assert.Equal(t, 0, out.Len())

	out = Filter(src, "EPC")
	assert.Equal(t, 2, out.Len())
}

func TestFilterNumericColumn(t *testing.T) {
	src := &model.Report{
		Columns: []string{"No. Contrato"},
		Rows:    []model.Row{{"No. Contrato": int64(4501)}, {"No. Contrato": int64(7700)}},
	}
	out := Filter(src, "45")
	require.Equal(t, 1, out.Len())
	assert.Equal(t, int64(4501), out.Rows[0]["No. Contrato"])
}

func TestFilterNoContractColumnIsNoop(t *testing.T) {
	src := &model.Report{
		Columns: []string{"Paso"},
		Rows:    []model.Row{{"Paso": "1"}},
	}
	assert.Same(t, src, Filter(src, "CP100"))
}

func TestFilterEmptyReport(t *testing.T) {
	empty := &model.Report{Columns: []string{"Contrato"}}
	assert.Same(t, empty, Filter(empty, "CP100"))

	var none *model.Report
	assert.Nil(t, Filter(none, "CP100"))
}
