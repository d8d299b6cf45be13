package job

import (
	"time"

	"jobport/internal/common"
)

// RatingUnset is the sentinel for a job that has never been rated.
const RatingUnset = -1.0

// Job is a posting owned by one recruiter. ActiveApplications and
// AcceptedCandidates are maintained exclusively by the capacity ledger;
// Update never writes them.
type Job struct {
	ID                   common.UUID `json:"id"`
	RecruiterID          common.UUID `json:"recruiter_id"`
	Title                string      `json:"title"`
	CompanyName          string      `json:"company_name"`
	Location             string      `json:"location"`
	JobType              string      `json:"job_type"`
	Salary               int         `json:"salary"`
	Duration             int         `json:"duration"`
	JobDescription       string      `json:"job_description"`
	RequiredSkillset     []string    `json:"required_skillset"`
	ExperienceLevel      string      `json:"experience_level"`
	EducationRequirement string      `json:"education_requirement"`
	Industry             string      `json:"industry,omitempty"`
	EmploymentType       string      `json:"employment_type"`
	ApplicationDeadline  *time.Time  `json:"application_deadline,omitempty"`
	DateOfPosting        time.Time   `json:"date_of_posting"`
	MaxApplicants        int         `json:"max_applicants"`
	MaxPositions         int         `json:"max_positions"`
	ActiveApplications   int         `json:"active_applications"`
	AcceptedCandidates   int         `json:"accepted_candidates"`
	Rating               float64     `json:"rating"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
