package domain

// BootstrapData describes the first platform administrator.
type BootstrapData struct {
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	CompanyName   string // operator company the admin belongs to
	CompanyPlan   string
}
