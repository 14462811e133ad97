package report

import (
	"fmt"
	"strings"

	"github.com/IvanShishkin/permlens/pkg/models"
)

// renderMarkdown renders a Markdown report
func renderMarkdown(r *models.InspectionResult) []byte {
	var sb strings.Builder

	sb.WriteString("# Permission Report\n\n")

	sb.WriteString("## Basic Information\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Path | `%s` |\n", r.Path))
	sb.WriteString(fmt.Sprintf("| Type | %s |\n", r.Kind))
	sb.WriteString(fmt.Sprintf("| Size | %s |\n", r.SizeDisplay()))
	sb.WriteString(fmt.Sprintf("| Last Modified | %s |\n", r.ModifiedDisplay()))
	sb.WriteString(fmt.Sprintf("| Owner | %s |\n", r.Ownership.OwnerLabel()))
	sb.WriteString(fmt.Sprintf("| Group | %s |\n", r.Ownership.GroupLabel()))
	sb.WriteString(fmt.Sprintf("| Symbolic | `%s` |\n", r.Symbolic))
	sb.WriteString(fmt.Sprintf("| Octal | `%s` |\n", r.Octal))
	sb.WriteString("\n")

	sb.WriteString("## Permission Breakdown\n\n")
	sb.WriteString("| Category | Read | Write | Execute |\n")
	sb.WriteString("|----------|------|-------|---------|\n")
	for _, s := range r.Permissions.Subjects() {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", s.Label, checkMark(s.Access.Read), checkMark(s.Access.Write), checkMark(s.Access.Execute)))
	}
	sb.WriteString("\n")

	if r.Permissions.HasSpecialBits() {
		sb.WriteString("## Special Permissions\n\n")
		for _, n := range SpecialNotices(r.Permissions) {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", n.Label, n.Text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Security Analysis\n\n")
	if !r.HasWarnings() {
		sb.WriteString("> ✅ **" + NoIssuesNotice + "**\n\n")
	} else {
		for _, w := range r.Warnings {
			sb.WriteString(fmt.Sprintf("- %s **%s** (%s): %s\n", getSeverityEmoji(w.Severity), w.Rule, w.Severity, w.Message))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Owner | Group | Others |\n")
	sb.WriteString("|-------|-------|--------|\n")
	sb.WriteString(fmt.Sprintf("| `%s` | `%s` | `%s` |\n", r.Permissions.Owner, r.Permissions.Group, r.Permissions.Others))

	return []byte(sb.String())
}

func checkMark(set bool) string {
	if set {
		return "✅"
	}
	return "❌"
}

// getSeverityEmoji returns emoji for severity level
func getSeverityEmoji(severity models.Severity) string {
	switch severity {
	case models.SeverityCritical:
		return "🔴"
	case models.SeverityHigh:
		return "🟠"
	case models.SeverityMedium:
		return "🟡"
	case models.SeverityLow:
		return "🟢"
	default:
		return "🔵"
	}
}
