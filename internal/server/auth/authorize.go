package auth

import (
	"fmt"
	"strconv"

	"linkarchive/internal/common"
	"linkarchive/internal/server/models"
)

// Target identifies the user a request addresses: either the symbolic
// "self" or a concrete user id taken from the path.
type Target struct {
	self bool
	id   uint32
}

func Self() Target { return Target{self: true} }

func TargetUser(id uint32) Target { return Target{id: id} }

// ParseTarget reads a path segment as a target reference: the literal
// "self" or a decimal user id.
func ParseTarget(s string) (Target, error) {
	if s == "self" {
		return Self(), nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Target{}, fmt.Errorf("bad user reference %q", s)
	}
	return TargetUser(uint32(id)), nil
}

// Authorize maps the caller onto the target user id. Self always resolves
// to the caller's own id; a concrete id is allowed only when it equals the
// caller's. There are no roles and no cross-user grants, so anything else
// is common.ErrUnauthorized.
func Authorize(user *models.User, target Target) (uint32, error) {
	if target.self {
		return user.ID, nil
	}
	if target.id != user.ID {
		return 0, common.ErrUnauthorized
	}
	return target.id, nil
}
