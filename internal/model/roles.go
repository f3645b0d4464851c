package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	// AuthorityPrefix marks role strings consumed by authorization checks.
	AuthorityPrefix = "ROLE_"

	AuthorityAdmin = AuthorityPrefix + RoleAdmin
)
