package report

import (
	"fmt"
	"strings"

	"github.com/IvanShishkin/permlens/pkg/models"
	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.Bold, color.FgHiYellow)
	labelColor  = color.New(color.FgHiBlack)
	accentColor = color.New(color.FgYellow)
	okColor     = color.New(color.Bold, color.FgGreen)
	errorColor  = color.New(color.Bold, color.FgRed)
	infoColor   = color.New(color.FgCyan)
)

const ruler = "───────────────────────────────────────────────────────────────"

// printConsole prints the result to the generator output with colors
func (g *Generator) printConsole(r *models.InspectionResult) {
	w := g.out
	fmt.Fprintln(w)

	headerColor.Fprintln(w, "BASIC INFORMATION")
	fmt.Fprintln(w)
	g.field("Path:", r.Path)
	g.field("Type:", string(r.Kind))
	g.field("Size:", r.SizeDisplay())
	g.field("Modified:", r.ModifiedDisplay())
	fmt.Fprintln(w)

	headerColor.Fprintln(w, "OWNERSHIP")
	fmt.Fprintln(w)
	g.field("Owner:", r.Ownership.OwnerLabel())
	g.field("Group:", r.Ownership.GroupLabel())
	fmt.Fprintln(w)

	headerColor.Fprintln(w, "PERMISSIONS")
	fmt.Fprintln(w)
	g.field("Symbolic:", accentColor.Sprint(r.Symbolic))
	g.field("Octal:", accentColor.Sprint(r.Octal))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", labelColor.Sprintf("%-10s %-6s %-6s %-7s", "", "Read", "Write", "Execute"))
	for _, s := range r.Permissions.Subjects() {
		fmt.Fprintf(w, "  %-10s %s %s %s\n", s.Label, mark(s.Access.Read), mark(s.Access.Write), mark(s.Access.Execute))
	}
	fmt.Fprintln(w)

	if r.Permissions.HasSpecialBits() {
		headerColor.Fprintln(w, "SPECIAL PERMISSIONS")
		fmt.Fprintln(w)
		for _, n := range SpecialNotices(r.Permissions) {
			c := accentColor
			if n.Level == "info" {
				c = infoColor
			}
			fmt.Fprintf(w, "  %s %s\n", c.Sprintf("%-11s", n.Label+":"), n.Text)
		}
		fmt.Fprintln(w)
	}

	labelColor.Fprintln(w, ruler)
	if !r.HasWarnings() {
		fmt.Fprintf(w, "  %s\n", okColor.Sprint("✓ "+NoIssuesNotice))
	} else {
		fmt.Fprintf(w, "  %s\n", errorColor.Sprintf("⚠ SECURITY ISSUES FOUND: %d", len(r.Warnings)))
		for i, warning := range r.Warnings {
			fmt.Fprintf(w, "\n  [%d] %s\n", i+1, warning.Rule)
			fmt.Fprintf(w, "      %s  %s\n", labelColor.Sprint("Severity:"), severityColor(warning.Severity).Sprint(strings.ToUpper(string(warning.Severity))))
			fmt.Fprintf(w, "      %s   %s\n", labelColor.Sprint("Details:"), warning.Message)
		}
	}
	labelColor.Fprintln(w, ruler)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n\n", Summary(r.Permissions))
}

// printConsoleError prints an analysis failure
func (g *Generator) printConsoleError(err error) {
	fmt.Fprintln(g.out)
	fmt.Fprintf(g.out, "  %s %s\n\n", errorColor.Sprint("✗"), err.Error())
}

func (g *Generator) field(label, value string) {
	fmt.Fprintf(g.out, "  %s %s\n", labelColor.Sprintf("%-10s", label), value)
}

// severityColor picks the console colour by severity priority
func severityColor(s models.Severity) *color.Color {
	switch p := models.GetSeverityPriority(s); {
	case p >= models.GetSeverityPriority(models.SeverityHigh):
		return errorColor
	case p == models.GetSeverityPriority(models.SeverityMedium):
		return accentColor
	default:
		return infoColor
	}
}

// mark renders a permission flag for the console grid
func mark(set bool) string {
	if set {
		return okColor.Sprintf("%-6s", "yes")
	}
	return errorColor.Sprintf("%-6s", "no")
}
