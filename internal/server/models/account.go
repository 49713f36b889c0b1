// Package models contains the persistence-level data structures of the
// server.
package models

import "time"

// Role is the authorization level of an account, carried in token claims.
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleAdmin    Role = "ADMIN"
)

// Status is the lifecycle state of an account. Only ACTIVE accounts may
// authenticate; every other value fails closed.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// Account is a read-only view of a stored account. The authentication
// core never mutates it; its lifecycle is owned by the account store.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Status       Status
	CreatedAt    time.Time
}
