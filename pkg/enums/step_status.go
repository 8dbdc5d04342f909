package enums

import "fmt"

// StepStatus is the client-side status of a single onboarding milestone.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in-progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusRejected   StepStatus = "rejected"
)

var validStepStatuses = []StepStatus{
	StepStatusPending,
	StepStatusInProgress,
	StepStatusCompleted,
	StepStatusRejected,
}

// String implements fmt.Stringer.
func (s StepStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StepStatus.
func (s StepStatus) IsValid() bool {
	for _, candidate := range validStepStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStepStatus converts raw input into a StepStatus.
func ParseStepStatus(value string) (StepStatus, error) {
	for _, candidate := range validStepStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid step status %q", value)
}
