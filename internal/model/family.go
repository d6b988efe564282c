package model

import "time"

// Roles a family member can hold.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// FamilyMember is one roster entry. PasswordHash never leaves the server: it
// is stripped before any member is returned to a client.
type FamilyMember struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	Role         string     `json:"role"`
	FolderPath   string     `json:"folderPath"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	IsActive     bool       `json:"isActive"`
}

// Sanitized returns a copy safe to hand to clients.
func (m FamilyMember) Sanitized() FamilyMember {
	m.PasswordHash = ""
	return m
}

// FamilySettings holds roster-wide configuration.
type FamilySettings struct {
	AllowSelfRegistration bool   `json:"allowSelfRegistration"`
	DefaultRole           string `json:"defaultRole"`
}

// FamilyData is the single document backing the family directory.
type FamilyData struct {
	Members  []FamilyMember `json:"members"`
	Settings FamilySettings `json:"settings"`
}
