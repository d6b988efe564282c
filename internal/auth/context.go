package auth

import "context"

type contextKey struct{}

// Identity carries the per-request credential and, after a family login, the
// acting member.
type Identity struct {
	Token    string // cloud disk bearer token
	Username string // family member username, when known
	Role     string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Token returns the disk token for the request, or "" if unauthenticated.
func Token(ctx context.Context) string {
	id, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return id.Token
}

func IsAdmin(ctx context.Context) bool {
	id, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return id.Role == "admin"
}
