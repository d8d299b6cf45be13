package user

// Role is the actor type carried in the access token. Every authenticated
// request acts as exactly one role.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleApplicant Role = "applicant"
)
