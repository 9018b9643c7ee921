package models

import (
	"fmt"
)

// Scope selects whether jobs are per-user agents or system-wide daemons
type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeUser   Scope = "user"
)

// ParseScope maps a flag value to a Scope. Only "user" and "system" are
// accepted.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeUser, ScopeSystem:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown scope %q (want %q or %q)", s, ScopeUser, ScopeSystem)
	}
}

// JobSummary identifies a stored job plist
type JobSummary struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
