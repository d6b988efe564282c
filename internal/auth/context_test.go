package auth

import (
	"context"
	"testing"
)

func TestWithIdentityAndFromContext(t *testing.T) {
	id := Identity{
		Token:    "tok-123",
		Username: "alice",
		Role:     "admin",
	}

	ctx := WithIdentity(context.Background(), id)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected Identity in context")
	}
	if got.Token != "tok-123" {
		t.Errorf("Token = %q, want %q", got.Token, "tok-123")
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want %q", got.Username, "alice")
	}
	if got.Role != "admin" {
		t.Errorf("Role = %q, want %q", got.Role, "admin")
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing Identity")
	}
}

func TestToken(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Token: "tok"})
	if Token(ctx) != "tok" {
		t.Errorf("Token = %q, want %q", Token(ctx), "tok")
	}
}

func TestTokenMissing(t *testing.T) {
	if Token(context.Background()) != "" {
		t.Error("expected empty token for missing context")
	}
}

func TestIsAdmin(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Role: "admin"})
	if !IsAdmin(ctx) {
		t.Error("expected IsAdmin = true for admin role")
	}
}

func TestIsAdminFalse(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{Role: "member"})
	if IsAdmin(ctx) {
		t.Error("expected IsAdmin = false for member role")
	}
}

func TestIsAdminMissing(t *testing.T) {
	if IsAdmin(context.Background()) {
		t.Error("expected IsAdmin = false for missing context")
	}
}
