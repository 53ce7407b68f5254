package domain

import "time"

// Capability is a privileged, data-driven grant held by an identity.
type Capability string

const (
	// CapPlatformAdmin may issue platform invitations and see every company.
	CapPlatformAdmin Capability = "platform:admin"
)

type Grant struct {
	IdentityID string
	Capability Capability
	GrantedBy  string
	CreatedAt  time.Time
}
