package models

// WarningRule identifies the heuristic that produced a warning
type WarningRule string

const (
	RuleWorldWritable   WarningRule = "world-writable"
	RuleSetuid          WarningRule = "elevated-privilege execution"
	RuleUnsafeDirectory WarningRule = "unsafe directory permissions"
)

// Warning is a human-readable security warning derived from permission bits
type Warning struct {
	Rule     WarningRule `json:"rule" yaml:"rule"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
}

// Severity represents the severity level of a warning
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// GetSeverityPriority returns numeric priority for severity (higher = more severe)
func GetSeverityPriority(s Severity) int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}
