package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"launchkit/internal/launchd"
	"launchkit/internal/models"
)

const plistExt = ".plist"

// DirStore implements JobStore over a single directory
type DirStore struct {
	dir string
}

// NewDirStore creates a store rooted at dir. The directory is created on
// the first Save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Dir() string {
	return s.dir
}

func (s *DirStore) List() ([]models.JobSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.JobSummary{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	jobs := []models.JobSummary{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, plistExt) {
			continue
		}
		jobs = append(jobs, models.JobSummary{
			Label: strings.TrimSuffix(name, plistExt),
			Path:  filepath.Join(s.dir, name),
		})
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Label < jobs[j].Label
	})
	return jobs, nil
}

func (s *DirStore) Read(label string) ([]byte, error) {
	path, err := s.path(label)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, label)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *DirStore) Save(job *launchd.Job) (models.JobSummary, error) {
	if _, err := s.path(job.Label); err != nil {
		return models.JobSummary{}, err
	}
	if err := job.Save(s.dir); err != nil {
		return models.JobSummary{}, err
	}
	return models.JobSummary{Label: job.Label, Path: job.Path(s.dir)}, nil
}

func (s *DirStore) Delete(label string) error {
	path, err := s.path(label)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, label)
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// path maps a label to its plist, refusing labels that would escape the
// store directory
func (s *DirStore) path(label string) (string, error) {
	if label == "" || label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return filepath.Join(s.dir, label+plistExt), nil
}
