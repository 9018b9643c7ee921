package launchd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSave_LabelToFilename(t *testing.T) {
	dir := t.TempDir()
	job, err := NewJob("com.example.test", "/usr/bin/example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := job.Save(dir); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	want := filepath.Join(dir, "com.example.test.plist")
	if job.Path(dir) != want {
		t.Fatalf("expected path %q, got %q", want, job.Path(dir))
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected file at %s: %v", want, err)
	}
}

func TestSave_CreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested", "deep")
	job, err := NewJob("com.example.test", "/usr/bin/example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := job.Save(dir); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "com.example.test.plist")); err != nil {
		t.Fatalf("expected file in nested directory: %v", err)
	}

	// Saving into an existing directory must succeed too.
	if err := job.Save(dir); err != nil {
		t.Fatalf("unexpected error on second save: %v", err)
	}
}

func TestSave_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "com.example.test.plist")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 8192)), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	job, err := NewJob("com.example.test", "/usr/bin/example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := job.Save(dir); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("expected overwritten file to decode: %v", err)
	}
	if *loaded.Program != "/usr/bin/example" {
		t.Fatalf("unexpected program: %q", *loaded.Program)
	}
}

func TestSave_DirectoryCollision(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	job, err := NewJob("com.example.test", "/usr/bin/example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = job.Save(filepath.Join(blocker, "sub"))
	if err == nil {
		t.Fatalf("expected error when output directory is a file")
	}
	if !strings.Contains(err.Error(), "failed to create directory") {
		t.Fatalf("expected directory creation error, got %v", err)
	}
	if !strings.Contains(err.Error(), blocker) {
		t.Fatalf("expected error to name %s, got %v", blocker, err)
	}
}

func TestSave_WriteFailureNamesPath(t *testing.T) {
	dir := t.TempDir()
	job, err := NewJob("com.example.test", "/usr/bin/example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A directory sitting where the plist should go makes the write fail.
	target := job.Path(dir)
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("failed to create blocking directory: %v", err)
	}

	err = job.Save(dir)
	if err == nil {
		t.Fatalf("expected write error")
	}
	if !strings.Contains(err.Error(), target) {
		t.Fatalf("expected error to name %s, got %v", target, err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	b := NewJobBuilder().Label("com.example.roundtrip")
	for _, tc := range fieldSetters {
		tc.set(b)
	}
	job, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	if err := job.Save(dir); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(job.Path(dir))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if !reflect.DeepEqual(job, loaded) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", job, loaded)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.plist")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}
