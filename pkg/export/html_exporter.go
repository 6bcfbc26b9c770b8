package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// HTMLExporter renders datasets into a self-contained printable document:
// inline styles only, no scripts, suitable for the browser's print-to-PDF
// flow.
type HTMLExporter struct {
	tmpl *template.Template
}

// NewHTMLExporter constructs the exporter with the compiled template.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{tmpl: template.Must(template.New("report").Parse(reportTemplate))}
}

type htmlReport struct {
	Title       string
	Subtitle    string
	Headers     []string
	Rows        []map[string]string
	GeneratedAt string
	RecordCount int
}

// Render produces the printable HTML document for the dataset.
func (e *HTMLExporter) Render(data Dataset, title, subtitle string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("html requires at least one header")
	}
	buf := &bytes.Buffer{}
	err := e.tmpl.Execute(buf, htmlReport{
		Title:       title,
		Subtitle:    subtitle,
		Headers:     data.Headers,
		Rows:        data.Rows,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		RecordCount: len(data.Rows),
	})
	if err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #222; }
h1 { font-size: 18px; text-transform: uppercase; text-align: center; margin-bottom: 4px; }
p.subtitle { text-align: center; margin-top: 0; font-size: 12px; color: #555; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; font-size: 12px; }
th, td { border: 1px solid #888; padding: 5px 8px; text-align: left; }
th { background: #eee; }
tr:nth-child(even) td { background: #fafafa; }
p.footer { text-align: right; font-size: 10px; color: #777; margin-top: 12px; }
@media print { body { margin: 8px; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{$headers := .Headers}}
{{range .Rows}}<tr>{{$row := .}}{{range $headers}}<td>{{index $row .}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<p class="footer">Generated {{.GeneratedAt}} ({{.RecordCount}} records)</p>
</body>
</html>
`
