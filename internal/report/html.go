package report

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/IvanShishkin/permlens/pkg/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateFuncs are available to every report template
var TemplateFuncs = template.FuncMap{
	"mark":     checkMark,
	"upper":    strings.ToUpper,
	"notices":  SpecialNotices,
	"summary":  Summary,
	"noIssues": func() string { return NoIssuesNotice },
}

// Templates returns a fresh template set with the "style", "result" and
// "report.tmpl" definitions. Callers may parse further templates into it.
func Templates() (*template.Template, error) {
	return template.New("report").Funcs(TemplateFuncs).ParseFS(templateFS, "templates/*.tmpl")
}

// renderHTML renders a standalone HTML report
func renderHTML(result *models.InspectionResult) ([]byte, error) {
	t, err := Templates()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "report.tmpl", result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
