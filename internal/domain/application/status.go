package application

import "strings"

type Status string

const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusCancelled   Status = "cancelled"
	StatusDeleted     Status = "deleted"
	StatusFinished    Status = "finished"
)

// ParseStatus normalizes caller-supplied status values to the closed enum.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case StatusApplied, StatusShortlisted, StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished:
		return normalized, true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transitions are permitted from s.
// Accepted is handled separately: it only admits Finished.
func IsTerminal(s Status) bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusDeleted, StatusFinished:
		return true
	default:
		return false
	}
}

// IsActive reports whether s counts against a job's maxApplicants and the
// applicant's open-application cap.
func IsActive(s Status) bool {
	return !IsTerminal(s)
}

// ActiveStatuses lists the statuses counted as active, for query filters.
func ActiveStatuses() []Status {
	return []Status{StatusApplied, StatusShortlisted, StatusAccepted}
}

// CanTransition reports whether to is reachable from from.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusApplied:
		switch to {
		case StatusShortlisted, StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished:
			return true
		}
	case StatusShortlisted:
		switch to {
		case StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished:
			return true
		}
	case StatusAccepted:
		switch to {
		case StatusFinished, StatusDeleted:
			return true
		}
	}
	return false
}
