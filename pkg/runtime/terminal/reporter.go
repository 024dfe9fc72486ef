package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/runtime/terminal/export"
)

// Reporter outputs reports to the console as plain text
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	tmpl := `{{.Title}} ({{.Records}} records from {{.Origin}}, filters: {{filters .Filters}})
{{range .Sections}}
=== {{.Title}} ===
{{range .Details}}- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}{{if .Description}} ({{.Description}}){{end}}
{{end}}{{end}}`
	t, err := template.New("report").
		Funcs(template.FuncMap{"filters": export.DescribeFilters}).
		Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
