package models

import (
	"io/fs"
	"time"
)

// EntryKind classifies a filesystem entry
type EntryKind string

const (
	KindFile      EntryKind = "File"
	KindDirectory EntryKind = "Directory"
	KindOther     EntryKind = "Other"
)

// KindOf maps a file mode to an entry kind
func KindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry holds the identity fields of an inspected path
type Entry struct {
	Path    string    `json:"path" yaml:"path"`
	Kind    EntryKind `json:"kind" yaml:"kind"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"modified" yaml:"modified"`
}
