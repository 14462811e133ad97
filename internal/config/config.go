package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the permlens configuration
type Config struct {
	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, yaml, md, html (empty = console)
	OutputFile   string `mapstructure:"output_file"`   // output file path

	// Quick-access paths offered by the web UI ("~" expands to home)
	QuickPaths []string `mapstructure:"quick_paths"`

	Server ServerConfig `mapstructure:"server"`
	Upload UploadConfig `mapstructure:"upload"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds web UI settings
type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UploadConfig holds settings for staging uploaded files
type UploadConfig struct {
	Dir     string `mapstructure:"dir"`      // staging directory (empty = OS temp dir)
	MaxSize string `mapstructure:"max_size"` // maximum upload size, e.g. "32M"
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // rotated log file, empty to disable
	JSON  bool   `mapstructure:"json"`
}

// Valid report formats ("" prints to the console)
var ReportFormats = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown", "html"}

// LoadConfig loads configuration from an optional file, environment variables and defaults
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("quick_paths", []string{".", "~", "/tmp", "/etc/passwd"})

	v.SetDefault("server.listen", ":8501")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("upload.dir", "")
	v.SetDefault("upload.max_size", "32M")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("PERMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks config values that cannot be defaulted
func (c *Config) Validate() error {
	if c.ReportFormat != "" && !contains(ReportFormats, c.ReportFormat) {
		return fmt.Errorf("report_format must be one of: %s (got: %s)", strings.Join(ReportFormats, ", "), c.ReportFormat)
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if c.Upload.MaxSize != "" {
		size, err := ParseSize(c.Upload.MaxSize)
		if err != nil {
			return fmt.Errorf("upload.max_size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("upload.max_size must be positive (got: %s)", c.Upload.MaxSize)
		}
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes, zero when unset or
// invalid. Validate reports invalid values.
func (c *Config) MaxUploadBytes() int64 {
	size, err := ParseSize(c.Upload.MaxSize)
	if err != nil {
		return 0
	}
	return size
}

// ParseSize parses size string (e.g., "650K", "1M") to bytes. An empty
// string is zero. Anything but digits with an optional K, M or G suffix is
// rejected.
func ParseSize(sizeStr string) (int64, error) {
	s := strings.TrimSpace(sizeStr)
	if len(s) == 0 {
		return 0, nil
	}

	// Get last character (unit)
	var multiplier int64 = 1
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		s = s[:len(s)-1]
	}

	// Parse number; no sign, fraction or trailing unit letters
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("invalid size: %q", sizeStr)
	}
	size, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", sizeStr)
	}
	if size > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflows: %q", sizeStr)
	}

	return size * multiplier, nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
