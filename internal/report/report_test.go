package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mohammed-shakir/pt-dashboard/internal/core/model"
	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
	"github.com/mohammed-shakir/pt-dashboard/internal/dataset"
	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
)

func sampleView(t *testing.T, c filter.Criteria) *dashboard.View {
	t.Helper()
	ds := dataset.New("test", []model.Record{
		{Name: "Universitas Pasundan", Code: "041001", OperatingBody: "Yayasan Pasundan", Province: "Jawa Barat", Accreditation: "Baik Sekali", Form: "Universitas", Programs: 30, Address: "Jl. A | B", Coordinates: "(-6.90, 107.61)"},
		{Name: "STIKOM Bali", Code: "081003", OperatingBody: "Yayasan Widya Dharma", Province: "Bali", Accreditation: "Baik", Form: "Sekolah Tinggi", Programs: 4, Coordinates: ""},
	})
	return dashboard.NewBuilder(ds, dashboard.Options{}).Build(c)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, " text ": FormatText, "md": FormatMarkdown, "html": FormatHTML} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err=%v want ErrUnknownFormat", err)
	}
}

func TestWrite_JSONRoundTrips(t *testing.T) {
	v := sampleView(t, filter.All())
	var buf bytes.Buffer
	if err := Write(&buf, v, FormatPretty); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var back dashboard.View
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Matched != 2 || back.Map.Fallbacks != 1 {
		t.Fatalf("matched=%d fallbacks=%d", back.Matched, back.Map.Fallbacks)
	}
}

func TestMarkdown_SectionsAndEscaping(t *testing.T) {
	md := Markdown(sampleView(t, filter.All()))
	for _, want := range []string{
		"## Info Perguruan Tinggi",
		"| 1 | Universitas Pasundan | 041001 | Yayasan Pasundan | Baik Sekali | 30 |",
		`Jl. A \| B`,
		"| 2 | STIKOM Bali | 0 | 0 |",
		"## Jumlah Perguruan Tinggi di Provinsi Jawa Barat dan Banten",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHTML_RendersTables(t *testing.T) {
	out := string(HTML(sampleView(t, filter.Criteria{Province: "Bali"})))
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "STIKOM Bali") {
		t.Fatalf("html output missing table:\n%s", out)
	}
	if !strings.Contains(out, "<title>Dashboard Perguruan Tinggi</title>") {
		t.Fatalf("expected a complete page")
	}
}

func TestWrite_TextListsFallbacks(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleView(t, filter.All()), FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "matched 2 of 2") || !strings.Contains(out, "1 marker(s) without a usable coordinate") {
		t.Fatalf("unexpected text report:\n%s", out)
	}
}
