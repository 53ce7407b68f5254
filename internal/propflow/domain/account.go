package domain

import "time"

// Identity is the authentication identity. Email is stored lower-cased.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the application-side account, keyed by the identity id.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	CompanyID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Company struct {
	ID           string
	Name         string
	Plan         string
	IsEnterprise bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRef is what a successful provisioning hands back to the client.
type AccountRef struct {
	UserID    string
	Email     string
	CompanyID string
	Role      Role
}

// Credentials are what the invitee submits with the onboarding form.
// The role always comes from the invitation.
type Credentials struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
}
