// Package scope confines caller-supplied disk paths to the family area. The
// FamilyPath type can only be built through the validating constructor, so a
// handler holding one has already passed the authorization boundary.
package scope

import (
	"errors"
	gopath "path"
	"strings"
)

// Root is the directory all family-scoped operations are confined to.
const Root = "/family"

// ErrForbidden is returned for any path that escapes the family area.
var ErrForbidden = errors.New("scope: path outside family area")

// FamilyPath is a cleaned disk path proven to live under Root.
type FamilyPath struct {
	p string
}

// ParseFamilyPath validates raw and returns it as a FamilyPath. Traversal
// segments are rejected outright rather than resolved, so "/../family/x"
// fails even though it would clean to an in-scope path.
func ParseFamilyPath(raw string) (FamilyPath, error) {
	if raw == "" {
		return FamilyPath{}, ErrForbidden
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return FamilyPath{}, ErrForbidden
		}
	}

	cleaned := gopath.Clean("/" + strings.TrimPrefix(raw, "/"))
	if cleaned != Root && !strings.HasPrefix(cleaned, Root+"/") {
		return FamilyPath{}, ErrForbidden
	}
	return FamilyPath{p: cleaned}, nil
}

// MemberFolder returns the family folder path for a member username.
func MemberFolder(username string) (FamilyPath, error) {
	if username == "" || strings.ContainsAny(username, "/\\") {
		return FamilyPath{}, ErrForbidden
	}
	return ParseFamilyPath(Root + "/" + username)
}

func (p FamilyPath) String() string {
	return p.p
}

// Join appends elem to the path, revalidating the result.
func (p FamilyPath) Join(elem string) (FamilyPath, error) {
	return ParseFamilyPath(p.p + "/" + elem)
}
