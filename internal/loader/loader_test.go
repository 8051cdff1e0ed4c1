package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
)

func headerRow() []any {
	out := make([]any, len(model.RequiredColumns))
	for i, c := range model.RequiredColumns {
		out[i] = c
	}
	return out
}

// builds an in-memory workbook with the standard header followed by rows
func workbook(t *testing.T, header []any, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	all := append([][]any{header}, rows...)
	for i, r := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func row(name, code, badan, prov, akr, bentuk string, prodi, mhs, dosen int, ratio any, alamat, koord string) []any {
	return []any{name, code, badan, prov, akr, bentuk, prodi, mhs, dosen, ratio, alamat, koord}
}

func TestRead_Workbook_CoercesAtLoadTime(t *testing.T) {
	buf := workbook(t, headerRow(),
		row("Universitas Pasundan", "041001", "Yayasan Pasundan", "jawa barat", "Baik Sekali", "Universitas", 30, 12000, 400, 30.0, "Jl. Tamansari", "(-6.9, 107.6)"),
		row("Universitas Banten Jaya", "041002", "Yayasan Banten", "BANTEN", "Baik", "Universitas", 12, 3000, 100, "1:30", "Serang", "(-6.1, 106.1)"),
		row("STIE Bali", "081003", "Yayasan Bali", "bali", "Baik", "Sekolah Tinggi", 4, 500, 20, 25, "Denpasar", "bad"),
	)

	ds, st, err := Read(context.Background(), buf, "Data PT.xlsx", Options{})
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, st.Rows)
	assert.Zero(t, st.CoercedCells)

	recs := ds.Records()
	assert.Equal(t, "Jawa Barat", recs[0].Province)
	assert.Equal(t, "Banten", recs[1].Province)
	assert.Equal(t, "Bali", recs[2].Province)
	assert.Equal(t, "041001", recs[0].Code)
	assert.Equal(t, 12000, recs[0].Students)
	require.NotNil(t, recs[1].RatioValue)
	assert.InDelta(t, 30.0, *recs[1].RatioValue, 1e-9)
	assert.Equal(t, "bad", recs[2].Coordinates, "coordinates stay raw until the map step")
	assert.Equal(t, []string{"Semua", "Bali", "Banten", "Jawa Barat"}, ds.Options(model.FieldProvince))
}

func TestRead_MissingColumnIsFatal(t *testing.T) {
	hdr := headerRow()[:len(model.RequiredColumns)-1] // drop Koordinat
	buf := workbook(t, hdr, []any{"x"})

	_, _, err := Read(context.Background(), buf, "x.xlsx", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), model.ColCoordinates)
}

func TestRead_HeaderOnlyIsFatal(t *testing.T) {
	buf := workbook(t, headerRow())
	_, _, err := Read(context.Background(), buf, "x.xlsx", Options{})
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, _, err := Read(context.Background(), strings.NewReader(""), "data.ods", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestRead_CSV_SkipsBlankRowsAndCountsCoercions(t *testing.T) {
	var b strings.Builder
	b.WriteString(strings.Join(model.RequiredColumns, ",") + "\n")
	b.WriteString(`Univ A,41001.0,1234,dki jakarta,Unggul,Universitas,"1.234",n/a,12,"21,5",Jakarta,"(-6.2, 106.8)"` + "\n")
	b.WriteString(",,,,,,,,,,,\n")

	ds, st, err := Read(context.Background(), strings.NewReader(b.String()), "data.csv", Options{})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 1, st.SkippedEmpty)
	assert.Equal(t, 1, st.CoercedCells)

	r := ds.Records()[0]
	assert.Equal(t, "41001.0", r.Code, "float rendering of a code is kept as text")
	assert.Equal(t, "1234", r.OperatingBody, "operating body is always text")
	assert.Equal(t, "Dki Jakarta", r.Province)
	assert.Equal(t, 1234, r.Programs)
	assert.Equal(t, 0, r.Students)
	require.NotNil(t, r.RatioValue)
	assert.InDelta(t, 21.5, *r.RatioValue, 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FromDisk_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("PT")
	require.NoError(t, err)
	hdr := headerRow()
	require.NoError(t, f.SetSheetRow("PT", "A1", &hdr))
	r := row("Univ A", "1", "Y", "banten", "Baik", "Institut", 1, 2, 3, 4, "Alamat", "(1, 2)")
	require.NoError(t, f.SetSheetRow("PT", "A2", &r))
	path := filepath.Join(t.TempDir(), "Data PT.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, _, err := Load(context.Background(), path, Options{Sheet: "PT"})
	require.NoError(t, err)
	assert.Equal(t, "Banten", ds.Records()[0].Province)

	_, _, err = Load(context.Background(), path, Options{Sheet: "Missing"})
	assert.ErrorIs(t, err, ErrLoad)
}

func TestRead_CanceledContext(t *testing.T) {
	buf := workbook(t, headerRow(),
		row("Univ A", "1", "Y", "banten", "Baik", "Institut", 1, 2, 3, 4, "Alamat", "(1, 2)"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Read(ctx, buf, "x.xlsx", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRatio(t *testing.T) {
	cases := map[string]float64{"21.5": 21.5, "21,5": 21.5, "1:20": 20, " 2 : 30 ": 15}
	for in, want := range cases {
		got := parseRatio(in)
		require.NotNil(t, got, in)
		assert.InDelta(t, want, *got, 1e-9, in)
	}
	for _, in := range []string{"", "-", "0:5", "abc"} {
		assert.Nil(t, parseRatio(in), in)
	}
}

func TestTitleWords_MatchesPerWordCapitalisation(t *testing.T) {
	c := newCoercer()
	cases := map[string]string{
		"d.i. yogyakarta":      "D.I. Yogyakarta",
		"DKI JAKARTA":          "Dki Jakarta",
		"kep. bangka belitung": "Kep. Bangka Belitung",
		"nusa tenggara barat":  "Nusa Tenggara Barat",
		"jawa-barat":           "Jawa-Barat",
		"":                     "",
		"  banten ":            "  Banten ",
	}
	for in, want := range cases {
		assert.Equal(t, want, c.titleWords(in), "titleWords(%q)", in)
	}
}
