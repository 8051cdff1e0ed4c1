package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

type mdTable struct {
	b *strings.Builder
}

func (t mdTable) header(cols ...string) {
	t.row(cols...)
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(t.b, "| %s |\n", strings.Join(seps, " | "))
}

func (t mdTable) row(cells ...string) {
	for i, c := range cells {
		cells[i] = cellEscaper.Replace(c)
	}
	fmt.Fprintf(t.b, "| %s |\n", strings.Join(cells, " | "))
}

// Markdown renders every section of the view as markdown tables.
func Markdown(v *dashboard.View) string {
	var b strings.Builder
	t := mdTable{b: &b}
	itoa := strconv.Itoa

	b.WriteString("# Dashboard Perguruan Tinggi\n\n")
	fmt.Fprintf(&b, "Provinsi: **%s** · Badan Penyelenggara: **%s** · Perguruan Tinggi: **%s**\n\n",
		v.Criteria.Province, v.Criteria.OperatingBody, v.Criteria.Institution)
	fmt.Fprintf(&b, "%d dari %d perguruan tinggi.\n\n", v.Matched, v.Total)

	b.WriteString("## Info Perguruan Tinggi\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Kode PTS", "Badan Penyelenggara", "Akreditasi PT", "Jumlah Prodi")
	for _, r := range v.Institutions {
		t.row(itoa(r.No), r.Name, r.Code, r.OperatingBody, r.Accreditation, itoa(r.Programs))
	}

	b.WriteString("\n## Badan Penyelenggara\n\n")
	t.header("No", "Badan Penyelenggara", "Jumlah")
	for _, e := range v.OperatingBodies {
		t.row(itoa(e.Rank), e.Value, itoa(e.Count))
	}

	b.WriteString("\n## Peta\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Lat", "Lon", "Sel H3", "Koordinat Valid")
	for _, m := range v.Map.Markers {
		valid := "ya"
		if m.Fallback {
			valid = "tidak"
		}
		t.row(itoa(m.No), m.Name, ftoa(m.Lat), ftoa(m.Lon), m.Cell, valid)
	}

	b.WriteString("\n## Alamat\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Alamat")
	for _, r := range v.Addresses {
		t.row(itoa(r.No), r.Name, r.Address)
	}

	b.WriteString("\n## Bentuk Perguruan Tinggi\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Bentuk Perguruan Tinggi")
	for _, r := range v.Forms {
		t.row(itoa(r.No), r.Name, r.Form)
	}

	b.WriteString("\n## Rasio Mahasiswa/Dosen\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Jumlah Mahasiswa", "Jumlah Dosen", "Rasio Dosen")
	for _, r := range v.Ratios {
		t.row(itoa(r.No), r.Name, itoa(r.Students), itoa(r.Faculty), r.Ratio)
	}
	if s := v.RatioSummary; s.Count > 0 {
		fmt.Fprintf(&b, "\nRata-rata %s, median %s, min %s, maks %s (%d nilai).\n",
			ftoa(s.Mean), ftoa(s.Median), ftoa(s.Min), ftoa(s.Max), s.Count)
	}

	b.WriteString("\n## Jumlah Prodi\n\n")
	t.header("No", "Nama Perguruan Tinggi", "Jumlah Prodi")
	for _, r := range v.Programs {
		t.row(itoa(r.No), r.Name, itoa(r.Programs))
	}

	for _, c := range v.Charts {
		fmt.Fprintf(&b, "\n## %s\n\n", c.Title)
		t.header(c.XLabel, c.YLabel)
		for _, bar := range c.Bars {
			t.row(bar.Label, itoa(bar.Value))
		}
	}
	return b.String()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
