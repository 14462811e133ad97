//go:build !windows

package filesystem

import (
	"io/fs"
	"syscall"
)

// OwnerIDs extracts numeric owner and group ids from FileInfo (Unix)
func OwnerIDs(info fs.FileInfo) (uid, gid uint32, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return 0, 0, false
	}
	return stat.Uid, stat.Gid, true
}

func identitySupported() bool {
	return true
}
