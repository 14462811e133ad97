package models

import (
	"runtime"
	"strconv"
)

// NameStatus tells whether an owner or group name could be resolved
type NameStatus string

const (
	NameResolved     NameStatus = "resolved"
	NameUnsupported  NameStatus = "unsupported"   // host has no identity database
	NameLookupFailed NameStatus = "lookup_failed" // lookup for this id failed
)

// Name is either a resolved account name or an unavailable marker
type Name struct {
	Value  string     `json:"value,omitempty" yaml:"value,omitempty"`
	Status NameStatus `json:"status" yaml:"status"`
}

// ResolvedName returns a resolved name
func ResolvedName(value string) Name {
	return Name{Value: value, Status: NameResolved}
}

// UnavailableName returns the unavailable marker with the given reason
func UnavailableName(status NameStatus) Name {
	return Name{Status: status}
}

// Available reports whether the name was resolved
func (n Name) Available() bool {
	return n.Status == NameResolved
}

// String returns the display form of the name
func (n Name) String() string {
	if n.Available() {
		return n.Value
	}
	switch n.Status {
	case NameUnsupported:
		return "N/A (" + runtime.GOOS + ")"
	default:
		return "Unknown"
	}
}

// Ownership holds numeric ids and resolved names of owner and group
type Ownership struct {
	UID uint32 `json:"uid" yaml:"uid"`
	GID uint32 `json:"gid" yaml:"gid"`

	// IDsReported is false when the filesystem did not report numeric ids
	// (Windows, in-memory filesystems). UID and GID are zero in that case.
	IDsReported bool `json:"ids_reported" yaml:"ids_reported"`

	Owner Name `json:"owner" yaml:"owner"`
	Group Name `json:"group" yaml:"group"`
}

// OwnerLabel formats the owner as "name (UID: n)"
func (o Ownership) OwnerLabel() string {
	return o.Owner.String() + " (UID: " + strconv.FormatUint(uint64(o.UID), 10) + ")"
}

// GroupLabel formats the group as "name (GID: n)"
func (o Ownership) GroupLabel() string {
	return o.Group.String() + " (GID: " + strconv.FormatUint(uint64(o.GID), 10) + ")"
}
