package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadNoCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Flujo.csv", "a\n1\n")

	r, found := Load("Docs", dir)
	assert.False(t, found)
	assert.Nil(t, r)
}

func TestLoadEmptyDirectory(t *testing.T) {
	for _, kw := range []string{"Docs", "Flujo", "Historial"} {
		r, found := Load(kw, t.TempDir())
		assert.False(t, found, kw)
		assert.Nil(t, r, kw)
	}
}

func TestLoadPicksNewestCreated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Docs_a.csv", "Contrato\nA-1\n")
	writeFile(t, dir, "Docs_b.csv", "Contrato\nB-1\n")
	writeWorkbook(t, dir, "Docs_c.xlsx", [][]interface{}{{"Contrato"}, {"C-1"}})

	loader := NewLoader(dir, WithTimestamp(stampByName(map[string]time.Time{
		"Docs_a.csv":  baseTime,
		"Docs_b.csv":  baseTime.Add(2 * time.Hour),
		"Docs_c.xlsx": baseTime.Add(time.Hour),
	})))

	r, found := loader.Load("Docs")
	require.True(t, found)
	assert.Equal(t, "B-1", r.Rows[0]["Contrato"])
	assert.Equal(t, filepath.Join(dir, "Docs_b.csv"), r.Source)
}

func TestLoadPicksNewestXLSX(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Docs_a.csv", "Contrato\nA-1\n")
	writeWorkbook(t, dir, "Docs_c.xlsx", [][]interface{}{{"Contrato"}, {"C-1"}})

	loader := NewLoader(dir, WithTimestamp(stampByName(map[string]time.Time{
		"Docs_a.csv":  baseTime,
		"Docs_c.xlsx": baseTime.Add(time.Hour),
	})))

	r, found := loader.Load("Docs")
	require.True(t, found)
	assert.Equal(t, "C-1", r.Rows[0]["Contrato"])
}

func TestLoadIgnoresLockFileEvenIfNewest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Docs.csv", "Contrato\nA-1\n")
	writeFile(t, dir, "~$Docs.xlsx", "lock")

	loader := NewLoader(dir, WithTimestamp(stampByName(map[string]time.Time{
		"Docs.csv":    baseTime,
		"~$Docs.xlsx": baseTime.Add(24 * time.Hour),
	})))

	res := loader.Inspect("Docs")
	require.True(t, res.Found)
	assert.Equal(t, "Docs.csv", res.File.Name)
	assert.Equal(t, 1, res.Candidates)
}

func TestLoadParseFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Docs_ok.csv", "Contrato\nA-1\n")
	writeFile(t, dir, "Docs_bad.xlsx", "definitely not a workbook")

	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewLoader(dir,
		WithLogger(zap.New(core)),
		WithTimestamp(stampByName(map[string]time.Time{
			"Docs_ok.csv":   baseTime,
			"Docs_bad.xlsx": baseTime.Add(time.Hour),
		})))

	r, found := loader.Load("Docs")
	assert.False(t, found)
	assert.Nil(t, r)
	assert.Equal(t, 1, logs.FilterMessage("report parse failed").Len())

	res := loader.Inspect("Docs")
	assert.False(t, res.Found)
	assert.Equal(t, "Docs_bad.xlsx", res.File.Name)
	assert.ErrorIs(t, res.Err, ErrMalformed)
}

func TestLoadRejectsLatin1CSV(t *testing.T) {
	dir := t.TempDir()
	// Excel "CSV" 在 Windows-1252 下导出：í = 0xED, ó = 0xF3
	writeFile(t, dir, "Docs.csv", "T\xedtulo,Estatus\nDoc,Revisi\xf3n\n")

	r, found := Load("Docs", dir)
	assert.False(t, found)
	assert.Nil(t, r)

	res := NewLoader(dir).Inspect("Docs")
	assert.ErrorIs(t, res.Err, ErrMalformed)
	assert.Equal(t, "Docs.csv", res.File.Name)
}

func TestInspectNoCandidate(t *testing.T) {
	res := NewLoader(t.TempDir()).Inspect("Historial")
	assert.False(t, res.Found)
	assert.Nil(t, res.File)
	assert.True(t, errors.Is(res.Err, ErrNoCandidate))
}

func TestLoadRescansEveryCall(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir)

	_, found := loader.Load("Flujo")
	require.False(t, found)

	writeFile(t, dir, "Flujo_pendientes.csv", "Contrato,Paso\nCP1-A,Revisión\n")
	r, found := loader.Load("Flujo")
	require.True(t, found)
	assert.Equal(t, 1, r.Len())

	require.NoError(t, os.Remove(filepath.Join(dir, "Flujo_pendientes.csv")))
	_, found = loader.Load("Flujo")
	assert.False(t, found)
}

func TestLoadMissingDirectory(t *testing.T) {
	res := NewLoader(filepath.Join(t.TempDir(), "missing")).Inspect("Docs")
	assert.False(t, res.Found)
	assert.Error(t, res.Err)
}

func TestParseFileUnsupported(t *testing.T) {
	_, err := parseFile(Candidate{Name: "Docs.ods", Path: "Docs.ods"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
