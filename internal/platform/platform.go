package platform

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"

	"launchkit/internal/launchd"
	"launchkit/internal/models"
)

var (
	// ErrNotFound is returned when no plist exists for a label.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidLabel is returned for labels that cannot name a file in the
	// store directory.
	ErrInvalidLabel = errors.New("invalid job label")
)

// JobStore defines the operations on a directory of job plists
type JobStore interface {
	// Dir returns the directory the store writes to
	Dir() string

	// List returns the stored jobs sorted by label
	List() ([]models.JobSummary, error)

	// Read returns the plist bytes stored for label
	Read(label string) ([]byte, error)

	// Save writes the job as <label>.plist
	Save(job *launchd.Job) (models.JobSummary, error)

	// Delete removes the plist stored for label
	Delete(label string) error
}

// DefaultDir returns the directory launchd loads the scope's jobs from
func DefaultDir(scope models.Scope) (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return serviceDirs(u.HomeDir, scope)[0], nil
}

// serviceDirs returns the directories holding plists for a scope, writable
// one first
func serviceDirs(home string, scope models.Scope) []string {
	switch scope {
	case models.ScopeSystem:
		return []string{
			"/Library/LaunchDaemons",
			"/System/Library/LaunchDaemons",
		}
	default:
		return []string{
			filepath.Join(home, "Library", "LaunchAgents"),
			"/Library/LaunchAgents",
		}
	}
}
