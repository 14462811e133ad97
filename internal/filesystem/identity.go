package filesystem

import (
	"fmt"
	"os/user"
	"strconv"
)

// IdentityResolver maps numeric owner and group ids to account names
type IdentityResolver interface {
	// Supported reports whether the host has an identity database at all
	Supported() bool

	// UserName returns the account name for uid
	UserName(uid uint32) (string, error)

	// GroupName returns the group name for gid
	GroupName(gid uint32) (string, error)
}

// SystemResolver resolves names through the host user database
type SystemResolver struct {
	supported bool
}

// NewSystemResolver probes the host capability once and returns a resolver
func NewSystemResolver() *SystemResolver {
	return &SystemResolver{supported: identitySupported()}
}

// Supported reports whether name lookups are possible on this host
func (r *SystemResolver) Supported() bool {
	return r.supported
}

// UserName looks up the account name for uid
func (r *SystemResolver) UserName(uid uint32) (string, error) {
	if !r.supported {
		return "", fmt.Errorf("identity database not available")
	}
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// GroupName looks up the group name for gid
func (r *SystemResolver) GroupName(gid uint32) (string, error) {
	if !r.supported {
		return "", fmt.Errorf("identity database not available")
	}
	g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return "", err
	}
	return g.Name, nil
}
