package models

import "fmt"

// Access holds the read/write/execute flags of one subject
type Access struct {
	Read    bool `json:"read" yaml:"read"`
	Write   bool `json:"write" yaml:"write"`
	Execute bool `json:"execute" yaml:"execute"`
}

// String returns the three-letter rwx form, e.g. "r-x"
func (a Access) String() string {
	b := []byte("---")
	if a.Read {
		b[0] = 'r'
	}
	if a.Write {
		b[1] = 'w'
	}
	if a.Execute {
		b[2] = 'x'
	}
	return string(b)
}

// Permissions contains the nine permission bits and the three special bits
type Permissions struct {
	Owner  Access `json:"owner" yaml:"owner"`
	Group  Access `json:"group" yaml:"group"`
	Others Access `json:"others" yaml:"others"`

	Setuid bool `json:"setuid" yaml:"setuid"`
	Setgid bool `json:"setgid" yaml:"setgid"`
	Sticky bool `json:"sticky" yaml:"sticky"`
}

// HasSpecialBits returns true if any of setuid, setgid or sticky is set
func (p Permissions) HasSpecialBits() bool {
	return p.Setuid || p.Setgid || p.Sticky
}

// Subject pairs a subject label with its access flags
type Subject struct {
	Label  string
	Access Access
}

// Subjects returns owner, group and others in display order
func (p Permissions) Subjects() []Subject {
	return []Subject{
		{Label: "Owner", Access: p.Owner},
		{Label: "Group", Access: p.Group},
		{Label: "Others", Access: p.Others},
	}
}

// InspectionResult is the outcome of a successful analysis
type InspectionResult struct {
	Entry `yaml:",inline"`

	Ownership Ownership `json:"ownership" yaml:"ownership"`

	// Mode holds the low 12 bits (permissions plus setuid/setgid/sticky)
	Mode        uint32      `json:"mode" yaml:"mode"`
	Octal       string      `json:"octal" yaml:"octal"`
	Symbolic    string      `json:"symbolic" yaml:"symbolic"`
	Permissions Permissions `json:"permissions" yaml:"permissions"`

	Warnings []Warning `json:"warnings" yaml:"warnings"`
}

// HasWarnings returns true if at least one warning was derived
func (r *InspectionResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// SizeDisplay formats the size as bytes up to 1 KB, then as KB with two decimals
func (r *InspectionResult) SizeDisplay() string {
	kb := float64(r.Size) / 1024
	if kb > 1 {
		return fmt.Sprintf("%.2f KB", kb)
	}
	return fmt.Sprintf("%d bytes", r.Size)
}

// ModifiedDisplay formats the modification time in local time
func (r *InspectionResult) ModifiedDisplay() string {
	return r.ModTime.Local().Format("2006-01-02 15:04:05")
}
