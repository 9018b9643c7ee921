package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"launchkit/internal/jobfile"
	"launchkit/internal/logger"
	"launchkit/internal/platform"
)

// maxDefinitionSize bounds request bodies and preview messages
const maxDefinitionSize = 1 << 20

const plistContentType = "application/x-plist"

// Handler wraps the job store and provides HTTP handlers
type Handler struct {
	store platform.JobStore
}

// NewHandler creates a new API handler
func NewHandler(store platform.JobStore) *Handler {
	return &Handler{store: store}
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Debug("failed to write response", "error", err)
	}
}

// plistResponse writes rendered plist bytes
func plistResponse(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", plistContentType)
	w.WriteHeader(status)
	w.Write(data)
}

// errorResponse writes an error response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError maps store errors to status codes
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, platform.ErrInvalidLabel):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, platform.ErrNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("job store failure", "error", err)
		errorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// readDefinition reads a bounded request body
func readDefinition(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxDefinitionSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) > maxDefinitionSize {
		return nil, fmt.Errorf("definition exceeds %d bytes", maxDefinitionSize)
	}
	return data, nil
}

// render builds a job from definition bytes and encodes it as plist XML
func render(data []byte) ([]byte, error) {
	job, err := jobfile.Parse(data, "")
	if err != nil {
		return nil, err
	}
	return job.Marshal()
}

// GetInfo returns the directory jobs are saved to
func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"dir": h.store.Dir(),
	})
}

// ListJobs returns every stored job
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.List()
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, jobs)
}

// CreateJob builds the posted definition and saves it
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	data, err := readDefinition(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := jobfile.Parse(data, "")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.store.Save(job)
	if err != nil {
		storeError(w, err)
		return
	}

	logger.Info("saved job", "label", summary.Label, "path", summary.Path)
	jsonResponse(w, http.StatusCreated, summary)
}

// GetJob returns the stored plist for a label
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request, label string) {
	data, err := h.store.Read(label)
	if err != nil {
		storeError(w, err)
		return
	}
	plistResponse(w, http.StatusOK, data)
}

// DeleteJob removes the stored plist for a label
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request, label string) {
	if err := h.store.Delete(label); err != nil {
		storeError(w, err)
		return
	}
	logger.Info("deleted job", "label", label)
	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RenderJob returns the plist for the posted definition without saving it
func (h *Handler) RenderJob(w http.ResponseWriter, r *http.Request) {
	data, err := readDefinition(r)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := render(data)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	plistResponse(w, http.StatusOK, out)
}
