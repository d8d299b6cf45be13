package handlers

import (
	"net/http"
	"strconv"
	"time"

	"jobport/internal/app"
	"jobport/internal/domain/job"
	"jobport/internal/http/middleware"
	"jobport/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title                string     `json:"title" validate:"omitempty,min=4,max=120"`
	CompanyName          string     `json:"company_name" validate:"max=120"`
	Location             string     `json:"location" validate:"max=120"`
	JobType              string     `json:"job_type" validate:"max=60"`
	Salary               int        `json:"salary" validate:"min=0"`
	Duration             int        `json:"duration" validate:"min=0"`
	JobDescription       string     `json:"job_description"`
	RequiredSkillset     []string   `json:"required_skillset" validate:"dive,min=1"`
	ExperienceLevel      string     `json:"experience_level" validate:"max=60"`
	EducationRequirement string     `json:"education_requirement" validate:"max=120"`
	Industry             string     `json:"industry" validate:"max=120"`
	EmploymentType       string     `json:"employment_type" validate:"max=60"`
	ApplicationDeadline  *time.Time `json:"application_deadline"`
	MaxApplicants        int        `json:"max_applicants" validate:"min=0"`
	MaxPositions         int        `json:"max_positions" validate:"min=0"`
}

func (req jobRequest) toJob() job.Job {
	return job.Job{
		Title:                req.Title,
		CompanyName:          req.CompanyName,
		Location:             req.Location,
		JobType:              req.JobType,
		Salary:               req.Salary,
		Duration:             req.Duration,
		JobDescription:       req.JobDescription,
		RequiredSkillset:     req.RequiredSkillset,
		ExperienceLevel:      req.ExperienceLevel,
		EducationRequirement: req.EducationRequirement,
		Industry:             req.Industry,
		EmploymentType:       req.EmploymentType,
		ApplicationDeadline:  req.ApplicationDeadline,
		MaxApplicants:        req.MaxApplicants,
		MaxPositions:         req.MaxPositions,
	}
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	posting := req.toJob()
	posting.RecruiterID = recruiterID
	created, err := h.jobs.Create(r.Context(), posting)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	posting := req.toJob()
	posting.ID = jobID
	posting.RecruiterID = recruiterID
	updated, err := h.jobs.Update(r.Context(), posting)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	posting, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, posting)
}

func (h *JobHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.jobs.ListOpen(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListByRecruiter(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByRecruiter(r.Context(), recruiterID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), jobID, recruiterID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "job deleted successfully"})
}
