package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"applied", StatusApplied, true},
		{"Shortlisted", StatusShortlisted, true},
		{"  ACCEPTED ", StatusAccepted, true},
		{"rejected", StatusRejected, true},
		{"cancelled", StatusCancelled, true},
		{"deleted", StatusDeleted, true},
		{"finished", StatusFinished, true},
		{"pending", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusApplied:     {StatusShortlisted, StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished},
		StatusShortlisted: {StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished},
		StatusAccepted:    {StatusFinished, StatusDeleted},
	}
	all := []Status{StatusApplied, StatusShortlisted, StatusAccepted, StatusRejected, StatusCancelled, StatusDeleted, StatusFinished}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_SelfIsNotATransition(t *testing.T) {
	assert.False(t, CanTransition(StatusApplied, StatusApplied))
	assert.False(t, CanTransition(StatusAccepted, StatusAccepted))
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusDeleted, StatusFinished} {
		assert.True(t, IsTerminal(s), "%s", s)
		assert.False(t, IsActive(s), "%s", s)
	}
	for _, s := range []Status{StatusApplied, StatusShortlisted, StatusAccepted} {
		assert.False(t, IsTerminal(s), "%s", s)
		assert.True(t, IsActive(s), "%s", s)
	}
}

func TestActiveStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusApplied, StatusShortlisted, StatusAccepted}, ActiveStatuses())
}
