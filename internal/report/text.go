package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
)

// writeText prints the institution table, the operating-body counts and the
// charts as aligned columns.
func writeText(w io.Writer, v *dashboard.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "provinsi=%s badan=%s pt=%s\tmatched %d of %d\n\n",
		v.Criteria.Province, v.Criteria.OperatingBody, v.Criteria.Institution, v.Matched, v.Total)

	fmt.Fprintln(tw, "NO\tNAMA\tKODE\tBADAN\tAKREDITASI\tPRODI")
	for _, r := range v.Institutions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", r.No, r.Name, r.Code, r.OperatingBody, r.Accreditation, r.Programs)
	}

	fmt.Fprintln(tw, "\nBADAN PENYELENGGARA\tJUMLAH")
	for _, e := range v.OperatingBodies {
		fmt.Fprintf(tw, "%s\t%d\n", e.Value, e.Count)
	}

	if v.Map.Fallbacks > 0 {
		fmt.Fprintf(tw, "\n%d marker(s) without a usable coordinate, placed at (0, 0)\n", v.Map.Fallbacks)
	}

	for _, c := range v.Charts {
		fmt.Fprintf(tw, "\n%s\n", c.Title)
		for _, b := range c.Bars {
			fmt.Fprintf(tw, "%s\t%d\n", b.Label, b.Value)
		}
	}
	return tw.Flush()
}
