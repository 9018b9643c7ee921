package launchd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const plistIndent = "\t"

// Path returns the file Save writes for this job: <dir>/<label>.plist.
func (j *Job) Path(dir string) string {
	return filepath.Join(dir, j.Label+".plist")
}

// Marshal renders the job as an XML property list.
func (j *Job) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := plist.NewEncoderForFormat(&buf, plist.XMLFormat)
	enc.Indent(plistIndent)
	if err := enc.Encode(j); err != nil {
		return nil, fmt.Errorf("failed to encode job %s: %w", j.Label, err)
	}
	return buf.Bytes(), nil
}

// Save writes the job to <dir>/<label>.plist, creating missing directories
// and overwriting any existing file in place.
func (j *Job) Save(dir string) error {
	path := j.Path(dir)

	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", parent, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write plist file %s: %w", path, err)
	}

	enc := plist.NewEncoderForFormat(f, plist.XMLFormat)
	enc.Indent(plistIndent)
	if err := enc.Encode(j); err != nil {
		f.Close()
		return fmt.Errorf("failed to write plist file %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write plist file %s: %w", path, err)
	}
	return nil
}

// Unmarshal decodes a property list (any plist format) into a Job.
func Unmarshal(data []byte) (*Job, error) {
	var job Job
	if _, err := plist.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode plist: %w", err)
	}
	return &job, nil
}

// Load reads and decodes the plist file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plist file %s: %w", path, err)
	}

	job, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return job, nil
}
