//go:build windows

package filesystem

import "io/fs"

// OwnerIDs reports no numeric ids on Windows, ownership is SID based
func OwnerIDs(info fs.FileInfo) (uid, gid uint32, ok bool) {
	return 0, 0, false
}

func identitySupported() bool {
	return false
}
