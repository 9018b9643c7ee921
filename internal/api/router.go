package api

import (
	"net/http"
	"net/url"
	"strings"

	"launchkit/internal/logger"
	"launchkit/internal/platform"
)

// Router sets up the HTTP routes
type Router struct {
	handler  *Handler
	previews *PreviewStreamer
	mux      *http.ServeMux
}

// NewRouter creates a new router with all API endpoints
func NewRouter(store platform.JobStore) *Router {
	r := &Router{
		handler:  NewHandler(store),
		previews: NewPreviewStreamer(),
		mux:      http.NewServeMux(),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.mux.HandleFunc("/api/info", r.only(http.MethodGet, r.handler.GetInfo))
	r.mux.HandleFunc("/api/jobs", r.handleJobs)
	r.mux.HandleFunc("/api/jobs/", r.handleJob)
	r.mux.HandleFunc("/api/render", r.only(http.MethodPost, r.handler.RenderJob))
	r.mux.HandleFunc("/api/preview", r.previews.HandlePreview)
}

// only rejects requests with any other method
func (r *Router) only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, req)
	}
}

// handleJobs handles GET and POST /api/jobs
func (r *Router) handleJobs(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.handler.ListJobs(w, req)
	case http.MethodPost:
		r.handler.CreateJob(w, req)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleJob routes /api/jobs/{label}
func (r *Router) handleJob(w http.ResponseWriter, req *http.Request) {
	label := extractLabel(req.URL.Path)
	if label == "" {
		http.Error(w, "Job label required", http.StatusBadRequest)
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.handler.GetJob(w, req, label)
	case http.MethodDelete:
		r.handler.DeleteJob(w, req, label)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// extractLabel extracts the job label from the URL path.
// Expects paths like /api/jobs/{label}; anything after a further slash is
// kept so the store can reject it.
func extractLabel(path string) string {
	return strings.TrimPrefix(path, "/api/jobs/")
}

// allowedOrigin reports whether a browser request comes from this server or
// a localhost page. Requests without an Origin header are not from a browser
// page and pass.
func allowedOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, req.Host) {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		if !allowedOrigin(req) {
			logger.Warn("rejected cross-origin request", "method", req.Method, "path", req.URL.Path, "origin", req.Header.Get("Origin"))
			http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
