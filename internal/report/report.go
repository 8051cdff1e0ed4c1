// Package report renders a dashboard view for the command line.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/mohammed-shakir/pt-dashboard/internal/dashboard"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatPretty   Format = "pretty"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var ErrUnknownFormat = errors.New("unknown report format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPretty, FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders v to w in format f.
func Write(w io.Writer, v *dashboard.View, f Format) error {
	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode(v)
	case FormatPretty:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatText:
		return writeText(w, v)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(v))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(v))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// HTML renders the markdown report as a standalone page.
func HTML(v *dashboard.View) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Dashboard Perguruan Tinggi",
	})
	return markdown.ToHTML([]byte(Markdown(v)), p, r)
}
