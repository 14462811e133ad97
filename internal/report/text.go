package report

import (
	"fmt"
	"strings"

	"github.com/IvanShishkin/permlens/pkg/models"
)

// renderText renders a plain text report
func renderText(r *models.InspectionResult) []byte {
	var sb strings.Builder

	// Header
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString("  PERMLENS PERMISSION REPORT\n")
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	sb.WriteString("BASIC INFORMATION\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Path:             %s\n", r.Path))
	sb.WriteString(fmt.Sprintf("Type:             %s\n", r.Kind))
	sb.WriteString(fmt.Sprintf("Size:             %s\n", r.SizeDisplay()))
	sb.WriteString(fmt.Sprintf("Last Modified:    %s\n", r.ModifiedDisplay()))
	sb.WriteString("\n")

	sb.WriteString("OWNERSHIP\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Owner:            %s\n", r.Ownership.OwnerLabel()))
	sb.WriteString(fmt.Sprintf("Group:            %s\n", r.Ownership.GroupLabel()))
	sb.WriteString("\n")

	sb.WriteString("PERMISSIONS\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Symbolic:         %s\n", r.Symbolic))
	sb.WriteString(fmt.Sprintf("Octal:            %s\n", r.Octal))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %-10s %-6s %-6s %s\n", "Category", "Read", "Write", "Execute"))
	for _, s := range r.Permissions.Subjects() {
		sb.WriteString(fmt.Sprintf("  %-10s %-6s %-6s %s\n", s.Label, yesNo(s.Access.Read), yesNo(s.Access.Write), yesNo(s.Access.Execute)))
	}
	sb.WriteString("\n")

	if r.Permissions.HasSpecialBits() {
		sb.WriteString("SPECIAL PERMISSIONS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, n := range SpecialNotices(r.Permissions) {
			sb.WriteString(fmt.Sprintf("%-18s%s\n", n.Label+":", n.Text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("SECURITY ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	if !r.HasWarnings() {
		sb.WriteString(NoIssuesNotice + "\n")
	}
	for i, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("[%d] %-10s %s: %s\n", i+1, strings.ToUpper(string(w.Severity)), w.Rule, w.Message))
	}
	sb.WriteString("\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(Summary(r.Permissions) + "\n\n")

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return []byte(sb.String())
}

func yesNo(set bool) string {
	if set {
		return "yes"
	}
	return "no"
}
