package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobport/internal/domain/user"
	"jobport/internal/http/handlers"
	"jobport/internal/http/metrics"
	httpmw "jobport/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	ProfileHandler     *handlers.ProfileHandler
	RatingHandler      *handlers.RatingHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *slog.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		segments := strings.Split(strings.Trim(path, "/"), "/")

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.ListOpen(w, req)
			return
		case req.Method == http.MethodGet && len(segments) == 2 && segments[0] == "jobs" && segments[1] != "recruiter":
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/applications") ||
			strings.HasPrefix(path, "/ratings") || strings.HasPrefix(path, "/applicant") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	segments := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case req.Method == http.MethodPost && path == "/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/jobs/recruiter":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.ListByRecruiter)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && len(segments) == 2 && segments[0] == "jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && len(segments) == 2 && segments[0] == "jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && len(segments) == 3 && segments[0] == "jobs" && segments[2] == "applications":
		httpmw.RequireRole(user.RoleApplicant)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && len(segments) == 3 && segments[0] == "jobs" && segments[2] == "applications":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && len(segments) == 2 && segments[0] == "applications":
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && len(segments) == 3 && segments[0] == "applications" && segments[2] == "status":
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodGet && path == "/applicant/profile":
		httpmw.RequireRole(user.RoleApplicant)(http.HandlerFunc(r.deps.ProfileHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/applicant/profile":
		httpmw.RequireRole(user.RoleApplicant)(http.HandlerFunc(r.deps.ProfileHandler.Upsert)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/ratings":
		r.deps.RatingHandler.Rate(w, req)
		return
	case req.Method == http.MethodGet && path == "/ratings":
		r.deps.RatingHandler.Get(w, req)
		return
	}

	http.NotFound(w, req)
}
