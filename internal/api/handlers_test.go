package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"launchkit/internal/launchd"
	"launchkit/internal/models"
)

const demoDefinition = `
label: com.example.demo
program_arguments: [/usr/bin/demo, --serve]
run_at_load: true
`

func TestGetInfo_ReturnsDir(t *testing.T) {
	h := NewHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	rr := httptest.NewRecorder()
	h.GetInfo(rr, req)

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["dir"] != "/fake/LaunchAgents" {
		t.Fatalf("expected dir %q, got %q", "/fake/LaunchAgents", body["dir"])
	}
}

func TestListJobs_EmptyIsArray(t *testing.T) {
	h := NewHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rr := httptest.NewRecorder()
	h.ListJobs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestCreateJob_SavesDefinition(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(demoDefinition))
	rr := httptest.NewRecorder()
	h.CreateJob(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	var summary models.JobSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Label != "com.example.demo" {
		t.Fatalf("expected label %q, got %q", "com.example.demo", summary.Label)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 Save call, got %d", len(store.saved))
	}

	job, err := launchd.Unmarshal(store.jobs["com.example.demo"])
	if err != nil {
		t.Fatalf("saved plist does not decode: %v", err)
	}
	if len(job.ProgramArguments) != 2 || job.ProgramArguments[1] != "--serve" {
		t.Fatalf("unexpected arguments: %v", job.ProgramArguments)
	}
}

func TestCreateJob_BadDefinition(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "missing label", body: "program: /bin/true\n"},
		{name: "unknown key", body: "label: a\nprogrm: /bin/true\n"},
		{name: "empty", body: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			h := NewHandler(store)

			req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.CreateJob(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if len(store.saved) != 0 {
				t.Fatalf("expected no Save call, got %v", store.saved)
			}
		})
	}
}

func TestCreateJob_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	h := NewHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(demoDefinition))
	rr := httptest.NewRecorder()
	h.CreateJob(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestRenderJob_ReturnsPlist(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(demoDefinition))
	rr := httptest.NewRecorder()
	h.RenderJob(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != plistContentType {
		t.Fatalf("expected content type %q, got %q", plistContentType, ct)
	}
	if !strings.Contains(rr.Body.String(), "<string>com.example.demo</string>") {
		t.Fatalf("expected label in plist, got %s", rr.Body.String())
	}
	if len(store.saved) != 0 {
		t.Fatalf("render must not save, got %v", store.saved)
	}
}

func TestStoreError_StatusCodes(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store)

	cases := []struct {
		name  string
		label string
		want  int
	}{
		{name: "not found", label: "com.example.none", want: http.StatusNotFound},
		{name: "invalid label", label: "..", want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+tc.label, nil)
			rr := httptest.NewRecorder()
			h.GetJob(rr, req, tc.label)

			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestExtractLabel(t *testing.T) {
	cases := []struct {
		name string
		path string
		want string
	}{
		{name: "plain label", path: "/api/jobs/com.example.demo", want: "com.example.demo"},
		{name: "nested path kept", path: "/api/jobs/a/b", want: "a/b"},
		{name: "prefix only", path: "/api/jobs/", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractLabel(tc.path); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
