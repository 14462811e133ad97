package inspector

import (
	"fmt"
	"io/fs"

	"github.com/IvanShishkin/permlens/pkg/models"
)

// POSIX permission bits as defined by chmod(1). Go keeps setuid, setgid and
// sticky outside the low 12 bits, so they are mapped back here.
const (
	isUID   = 04000 // set user id on execution
	isGID   = 02000 // set group id on execution
	isTXT   = 01000 // sticky bit
	iRUser  = 00400
	iWUser  = 00200
	iXUser  = 00100
	iRGroup = 00040
	iWGroup = 00020
	iXGroup = 00010
	iROther = 00004
	iWOther = 00002
	iXOther = 00001

	modeMask = 07777
)

// RawMode returns the low 12 POSIX mode bits of a Go file mode
func RawMode(m fs.FileMode) uint32 {
	raw := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		raw |= isUID
	}
	if m&fs.ModeSetgid != 0 {
		raw |= isGID
	}
	if m&fs.ModeSticky != 0 {
		raw |= isTXT
	}
	return raw
}

// DecodePermissions splits the low 12 mode bits into named flags
func DecodePermissions(raw uint32) models.Permissions {
	return models.Permissions{
		Owner: models.Access{
			Read:    raw&iRUser != 0,
			Write:   raw&iWUser != 0,
			Execute: raw&iXUser != 0,
		},
		Group: models.Access{
			Read:    raw&iRGroup != 0,
			Write:   raw&iWGroup != 0,
			Execute: raw&iXGroup != 0,
		},
		Others: models.Access{
			Read:    raw&iROther != 0,
			Write:   raw&iWOther != 0,
			Execute: raw&iXOther != 0,
		},
		Setuid: raw&isUID != 0,
		Setgid: raw&isGID != 0,
		Sticky: raw&isTXT != 0,
	}
}

// OctalString renders the low 12 bits in base 8, e.g. "0755" or "4755"
func OctalString(raw uint32) string {
	return fmt.Sprintf("%04o", raw&modeMask)
}

// SymbolicString renders the 10-character ls(1) form, e.g. "drwxrwxrwt"
func SymbolicString(m fs.FileMode) string {
	p := DecodePermissions(RawMode(m))

	b := []byte{typeChar(m)}
	b = append(b, p.Owner.String()...)
	b = append(b, p.Group.String()...)
	b = append(b, p.Others.String()...)

	if p.Setuid {
		b[3] = special(p.Owner.Execute, 's')
	}
	if p.Setgid {
		b[6] = special(p.Group.Execute, 's')
	}
	if p.Sticky {
		b[9] = special(p.Others.Execute, 't')
	}

	return string(b)
}

// special returns the lowercase letter when the execute bit is also set,
// uppercase otherwise
func special(execute bool, c byte) byte {
	if execute {
		return c
	}
	return c - 'a' + 'A'
}

// typeChar returns the entry-type character of the symbolic mode
func typeChar(m fs.FileMode) byte {
	switch {
	case m.IsRegular():
		return '-'
	case m&fs.ModeDir != 0:
		return 'd'
	case m&fs.ModeSymlink != 0:
		return 'l'
	case m&fs.ModeCharDevice != 0:
		return 'c'
	case m&fs.ModeDevice != 0:
		return 'b'
	case m&fs.ModeNamedPipe != 0:
		return 'p'
	case m&fs.ModeSocket != 0:
		return 's'
	default:
		return '?'
	}
}
