package application

import (
	"time"

	"jobport/internal/common"
)

type Education struct {
	InstitutionName string     `json:"institution_name"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}

// Application is one applicant's candidacy for one job. The applicant profile
// fields are a snapshot captured at apply time, not a live reference.
type Application struct {
	ID                common.UUID `json:"id"`
	ApplicantID       common.UUID `json:"applicant_id"`
	RecruiterID       common.UUID `json:"recruiter_id"`
	JobID             common.UUID `json:"job_id"`
	Status            Status      `json:"status"`
	SOP               string      `json:"sop,omitempty"`
	DateOfApplication time.Time   `json:"date_of_application"`
	DateOfJoining     *time.Time  `json:"date_of_joining,omitempty"`

	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Resume        string      `json:"resume"`
	Bio           string      `json:"bio,omitempty"`
	ContactNumber string      `json:"contact_number,omitempty"`
	Skills        []string    `json:"skills"`
	Education     []Education `json:"education"`
	Rating        float64     `json:"rating"`
}
