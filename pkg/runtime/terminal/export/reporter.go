package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// columnWidths sizes each column to its widest cell, header included.
func columnWidths(report *domain.Report) []int {
	widths := make([]int, len(report.Columns))
	for i, col := range report.Columns {
		widths[i] = len(col)
	}
	for _, row := range report.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func (c *Reporter) Handle(report *domain.Report) error {
	widths := columnWidths(report)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(widths))
			for i := range widths {
				cell := ""
				if i < len(cells) {
					cell = cells[i]
				}
				parts[i] = fmt.Sprintf(" %-*s ", widths[i], cell)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func() string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
{{.Title}}
{{range .Summary}}
{{.Label}}: {{.Value}}
{{end}}
{{if .Columns}}{{separator}}
{{formatRow .Columns}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
