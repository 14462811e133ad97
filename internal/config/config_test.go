package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"Bytes", "100", 100, false},
		{"Kilobytes", "1K", 1024, false},
		{"Kilobytes lowercase", "1k", 1024, false},
		{"Megabytes", "1M", 1024 * 1024, false},
		{"Megabytes lowercase", "1m", 1024 * 1024, false},
		{"Gigabytes", "1G", 1024 * 1024 * 1024, false},
		{"Multiple MB", "32M", 32 * 1024 * 1024, false},
		{"Surrounding spaces", " 8K ", 8 * 1024, false},
		{"Empty string", "", 0, false},
		{"Invalid format", "abc", 0, true},
		{"Two-letter unit", "32MB", 0, true},
		{"Fraction", "1.5M", 0, true},
		{"Unknown unit", "10X", 0, true},
		{"Overflow", "9999999999G", 0, true},
		{"Negative", "-1K", 0, true},
		{"Unit only", "M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ReportFormat)
	assert.Equal(t, ":8501", cfg.Server.Listen)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "32M", cfg.Upload.MaxSize)
	assert.Equal(t, int64(32*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{".", "~", "/tmp", "/etc/passwd"}, cfg.QuickPaths)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PERMLENS_SERVER_LISTEN", "127.0.0.1:9000")
	t.Setenv("PERMLENS_REPORT_FORMAT", "json")
	t.Setenv("PERMLENS_UPLOAD_MAX_SIZE", "1M")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.Equal(t, "json", cfg.ReportFormat)
	assert.Equal(t, int64(1024*1024), cfg.MaxUploadBytes())
}

func TestLoadConfig_MalformedUploadSize(t *testing.T) {
	t.Setenv("PERMLENS_UPLOAD_MAX_SIZE", "32MB")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32MB")
	assert.Zero(t, cfg.MaxUploadBytes())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permlens.yaml")
	content := `
report_format: md
quick_paths: ["/var/www"]
server:
  listen: ":8080"
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "md", cfg.ReportFormat)
	assert.Equal(t, []string{"/var/www"}, cfg.QuickPaths)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	// Untouched keys keep their defaults
	assert.Equal(t, "32M", cfg.Upload.MaxSize)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Console output", Config{Server: ServerConfig{Listen: ":1"}}, false},
		{"JSON report", Config{ReportFormat: "json", Server: ServerConfig{Listen: ":1"}}, false},
		{"Unknown report", Config{ReportFormat: "xml", Server: ServerConfig{Listen: ":1"}}, true},
		{"Empty listen", Config{}, true},
		{"Bad upload size", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "lots"}}, true},
		{"Upload size with MB", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "32MB"}}, true},
		{"Fractional upload size", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "1.5M"}}, true},
		{"Unknown upload unit", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "10X"}}, true},
		{"Overflowing upload size", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "9999999999G"}}, true},
		{"Zero upload size", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "0"}}, true},
		{"Valid upload size", Config{Server: ServerConfig{Listen: ":1"}, Upload: UploadConfig{MaxSize: "512K"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
