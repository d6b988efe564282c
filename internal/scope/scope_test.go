package scope

import (
	"errors"
	"testing"
)

func TestParseFamilyPath(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"root", "/family", "/family", false},
		{"nested", "/family/alice/todos/lists.json", "/family/alice/todos/lists.json", false},
		{"missing leading slash", "family/alice", "/family/alice", false},
		{"trailing slash", "/family/alice/", "/family/alice", false},
		{"empty", "", "", true},
		{"outside", "/etc/passwd", "", true},
		{"traversal", "/../family/x", "", true},
		{"traversal inside", "/family/../etc", "", true},
		{"prefix lookalike", "/familyX/doc", "", true},
		{"bare root", "/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := ParseFamilyPath(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("ParseFamilyPath(%q) err = %v, want ErrForbidden", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFamilyPath(%q): %v", tt.raw, err)
			}
			if fp.String() != tt.want {
				t.Errorf("ParseFamilyPath(%q) = %q, want %q", tt.raw, fp.String(), tt.want)
			}
		})
	}
}

func TestMemberFolder(t *testing.T) {
	fp, err := MemberFolder("alice")
	if err != nil {
		t.Fatalf("MemberFolder: %v", err)
	}
	if fp.String() != "/family/alice" {
		t.Errorf("folder = %q, want /family/alice", fp.String())
	}

	for _, bad := range []string{"", "a/b", `a\b`, ".."} {
		if _, err := MemberFolder(bad); err == nil {
			t.Errorf("MemberFolder(%q) succeeded, want error", bad)
		}
	}
}

func TestJoinRevalidates(t *testing.T) {
	fp, err := ParseFamilyPath("/family/alice")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := fp.Join("../../etc"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Join traversal err = %v, want ErrForbidden", err)
	}
	sub, err := fp.Join("photo.jpg")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if sub.String() != "/family/alice/photo.jpg" {
		t.Errorf("join = %q", sub.String())
	}
}
