package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/permlens/internal/config"
	"github.com/IvanShishkin/permlens/pkg/models"
	"go.uber.org/zap"
)

// Notice describes a set special permission bit
type Notice struct {
	Label string
	Text  string
	Level string // "warning" or "info"
}

// SpecialNotices returns one notice per set special bit, in setuid, setgid, sticky order
func SpecialNotices(p models.Permissions) []Notice {
	var notices []Notice
	if p.Setuid {
		notices = append(notices, Notice{Label: "Setuid", Text: "File runs with owner's privileges", Level: "warning"})
	}
	if p.Setgid {
		notices = append(notices, Notice{Label: "Setgid", Text: "File runs with group's privileges", Level: "warning"})
	}
	if p.Sticky {
		notices = append(notices, Notice{Label: "Sticky Bit", Text: "Only owner can delete files in directory", Level: "info"})
	}
	return notices
}

// NoIssuesNotice is shown when no warnings were derived
const NoIssuesNotice = "No security issues detected!"

// Summary returns the compact "Owner: rwx  Group: r-x  Others: r-x" line
func Summary(p models.Permissions) string {
	parts := make([]string, 0, 3)
	for _, s := range p.Subjects() {
		parts = append(parts, fmt.Sprintf("%s: %s", s.Label, s.Access))
	}
	return strings.Join(parts, "   ")
}

// Render encodes result in the given format
func Render(format string, result *models.InspectionResult) ([]byte, error) {
	switch format {
	case "json":
		return renderJSON(result)
	case "yaml", "yml":
		return renderYAML(result)
	case "txt", "text":
		return renderText(result), nil
	case "md", "markdown":
		return renderMarkdown(result), nil
	case "html":
		return renderHTML(result)
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}

// Generator writes inspection reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator writing console output to stdout
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects console and stdout output
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate writes the report and returns the absolute path of the written
// file, or "" when the report went to the console
func (g *Generator) Generate(result *models.InspectionResult) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	// If no format specified, print to console
	if format == "" {
		g.printConsole(result)
		return "", nil
	}

	data, err := Render(format, result)
	if err != nil {
		return "", err
	}

	// HTML is only useful as a file
	if outputFile == "" && format == "html" {
		outputFile = fmt.Sprintf("PERMLENS-REPORT-%s.html", time.Now().Format("20060102-150405"))
	}

	if outputFile == "" {
		_, err := g.out.Write(data)
		return "", err
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// GenerateError reports a failed analysis on the console
func (g *Generator) GenerateError(err error) {
	g.printConsoleError(err)
}
