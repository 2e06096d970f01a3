package models

// AuthUser is an authentication credential record. Username and Email are
// unique; HashedPassword is a bcrypt hash and never leaves the service layer.
type AuthUser struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
}
