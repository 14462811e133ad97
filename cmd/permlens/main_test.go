package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/IvanShishkin/permlens/internal/config"
	"github.com/IvanShishkin/permlens/pkg/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// execute runs the root command with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixture(t *testing.T, mode os.FileMode) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits")
	}
	path := filepath.Join(t.TempDir(), "fixture.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0600))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestInspect_Console(t *testing.T) {
	path := fixture(t, 0644)

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "File Permission Analyzer")
	assert.Contains(t, out, "BASIC INFORMATION")
	assert.Contains(t, out, "-rw-r--r--")
	assert.Contains(t, out, "No security issues detected!")
}

func TestInspect_JSON(t *testing.T) {
	path := fixture(t, 0646)

	out, err := execute(t, "inspect", "--report", "json", path)
	require.NoError(t, err)

	var result models.InspectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, path, result.Path)
	assert.Equal(t, models.KindFile, result.Kind)
	assert.Equal(t, "-rw-r--rw-", result.Symbolic)
	assert.Equal(t, "0646", result.Octal)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, models.RuleWorldWritable, result.Warnings[0].Rule)
	assert.True(t, result.Ownership.IDsReported)
}

func TestInspect_ReportFile(t *testing.T) {
	path := fixture(t, 0755)
	output := filepath.Join(t.TempDir(), "report.html")

	out, err := execute(t, "inspect", "-r", "html", "-o", output, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report:")
	assert.Contains(t, out, output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-rwxr-xr-x")
}

func TestInspect_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := execute(t, "inspect", missing)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Contains(t, out, "File not found: "+missing)
}

func TestInspect_InvalidFlags(t *testing.T) {
	out, err := execute(t, "inspect", "--report", "pdf", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--report must be one of")
	// Reported once, by main on stderr
	assert.NotContains(t, out, "--report must be one of")
	assert.NotContains(t, out, "Invalid parameter")

	_, err = execute(t, "inspect")
	assert.Error(t, err)
}

func TestInspect_ConfigFile(t *testing.T) {
	path := fixture(t, 0600)
	cfgPath := filepath.Join(t.TempDir(), "permlens.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("report_format: yaml\n"), 0600))

	out, err := execute(t, "--config", cfgPath, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "path: "+path)
	assert.NotContains(t, out, "BASIC INFORMATION")
}

func TestServe_InvalidListen(t *testing.T) {
	_, err := execute(t, "serve", "--listen", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--listen")
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "help")
	require.NoError(t, err)
	for _, section := range []string{"ABOUT", "COMMANDS", "INSPECT FLAGS", "SERVE FLAGS", "EXAMPLES"} {
		assert.Contains(t, out, section)
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		listen  string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"json", "json", "", false},
		{"markdown", "markdown", "", false},
		{"unknown format", "xml", "", true},
		{"port only", "", ":8501", false},
		{"host and port", "", "127.0.0.1:9000", false},
		{"missing port", "", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.format, tt.listen)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8501":          "localhost:8501",
		"0.0.0.0:80":     "localhost:80",
		"127.0.0.1:9000": "127.0.0.1:9000",
		"[::]:8080":      "localhost:8080",
		"bogus":          "bogus",
	}

	for in, want := range tests {
		assert.Equal(t, want, displayAddr(in), in)
	}
}

func TestNewServerLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "permlens.log")

	logger, err := newServerLogger(config.LogConfig{Level: "info", File: logFile, JSON: true}, false)
	require.NoError(t, err)

	logger.Info("hello from test")
	logger.Debug("filtered out")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.False(t, strings.Contains(string(data), "filtered out"))
}

func TestNewServerLogger_InvalidLevel(t *testing.T) {
	_, err := newServerLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
