package api

import (
	"fmt"
	"sort"

	"launchkit/internal/launchd"
	"launchkit/internal/models"
	"launchkit/internal/platform"
)

type fakeStore struct {
	dir  string
	jobs map[string][]byte

	saveErr error

	saved   []string
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{dir: "/fake/LaunchAgents", jobs: map[string][]byte{}}
}

func (s *fakeStore) Dir() string {
	return s.dir
}

func (s *fakeStore) List() ([]models.JobSummary, error) {
	jobs := []models.JobSummary{}
	for label := range s.jobs {
		jobs = append(jobs, models.JobSummary{Label: label, Path: s.dir + "/" + label + ".plist"})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Label < jobs[j].Label })
	return jobs, nil
}

func (s *fakeStore) Read(label string) ([]byte, error) {
	if label == ".." {
		return nil, fmt.Errorf("%w: %q", platform.ErrInvalidLabel, label)
	}
	data, ok := s.jobs[label]
	if !ok {
		return nil, fmt.Errorf("%w: %s", platform.ErrNotFound, label)
	}
	return data, nil
}

func (s *fakeStore) Save(job *launchd.Job) (models.JobSummary, error) {
	if s.saveErr != nil {
		return models.JobSummary{}, s.saveErr
	}
	data, err := job.Marshal()
	if err != nil {
		return models.JobSummary{}, err
	}
	s.jobs[job.Label] = data
	s.saved = append(s.saved, job.Label)
	return models.JobSummary{Label: job.Label, Path: s.dir + "/" + job.Label + ".plist"}, nil
}

func (s *fakeStore) Delete(label string) error {
	if _, ok := s.jobs[label]; !ok {
		return fmt.Errorf("%w: %s", platform.ErrNotFound, label)
	}
	delete(s.jobs, label)
	s.deleted = append(s.deleted, label)
	return nil
}
