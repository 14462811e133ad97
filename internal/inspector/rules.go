package inspector

import "github.com/IvanShishkin/permlens/pkg/models"

// Rule derives at most one warning from an entry's kind and permission bits
type Rule interface {
	// ID returns the warning rule identifier
	ID() models.WarningRule

	// Check returns a warning if the rule applies
	Check(kind models.EntryKind, perms models.Permissions) (models.Warning, bool)
}

// BaseRule provides the common rule fields
type BaseRule struct {
	id       models.WarningRule
	severity models.Severity
	message  string
	applies  func(kind models.EntryKind, perms models.Permissions) bool
}

// ID returns the rule identifier
func (r *BaseRule) ID() models.WarningRule {
	return r.id
}

// Check evaluates the rule predicate
func (r *BaseRule) Check(kind models.EntryKind, perms models.Permissions) (models.Warning, bool) {
	if !r.applies(kind, perms) {
		return models.Warning{}, false
	}
	return models.Warning{
		Rule:     r.id,
		Severity: r.severity,
		Message:  r.message,
	}, true
}

// DefaultRules returns the warning rules in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		&BaseRule{
			id:       models.RuleWorldWritable,
			severity: models.SeverityHigh,
			message:  "Anyone can modify this file/directory!",
			applies: func(_ models.EntryKind, p models.Permissions) bool {
				return p.Others.Write
			},
		},
		&BaseRule{
			id:       models.RuleSetuid,
			severity: models.SeverityHigh,
			message:  "File runs with special owner privileges",
			applies: func(_ models.EntryKind, p models.Permissions) bool {
				return p.Setuid
			},
		},
		&BaseRule{
			id:       models.RuleUnsafeDirectory,
			severity: models.SeverityCritical,
			message:  "Unsafe directory permissions detected!",
			applies: func(kind models.EntryKind, p models.Permissions) bool {
				return kind == models.KindDirectory && p.Others.Write && !p.Sticky
			},
		},
	}
}

// DeriveWarnings runs rules in order and collects every warning that applies.
// The result is never nil.
func DeriveWarnings(rules []Rule, kind models.EntryKind, perms models.Permissions) []models.Warning {
	warnings := make([]models.Warning, 0, len(rules))
	for _, rule := range rules {
		if w, ok := rule.Check(kind, perms); ok {
			warnings = append(warnings, w)
		}
	}
	return warnings
}
