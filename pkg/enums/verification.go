package enums

import "fmt"

// VerificationStage tracks where a vendor sits in the business review pipeline.
type VerificationStage string

const (
	VerificationStagePending     VerificationStage = "pending"
	VerificationStageUnderReview VerificationStage = "under_review"
	VerificationStageApproved    VerificationStage = "approved"
	VerificationStageRejected    VerificationStage = "rejected"
)

var validVerificationStages = []VerificationStage{
	VerificationStagePending,
	VerificationStageUnderReview,
	VerificationStageApproved,
	VerificationStageRejected,
}

// String implements fmt.Stringer.
func (s VerificationStage) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VerificationStage.
func (s VerificationStage) IsValid() bool {
	for _, candidate := range validVerificationStages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseVerificationStage converts raw input into a VerificationStage.
func ParseVerificationStage(value string) (VerificationStage, error) {
	for _, candidate := range validVerificationStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification stage %q", value)
}

// DocumentStatus is the review state of a single uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

var validDocumentStatuses = []DocumentStatus{
	DocumentStatusPending,
	DocumentStatusApproved,
	DocumentStatusRejected,
}

// String implements fmt.Stringer.
func (s DocumentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DocumentStatus.
func (s DocumentStatus) IsValid() bool {
	for _, candidate := range validDocumentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDocumentStatus converts raw input into a DocumentStatus.
func ParseDocumentStatus(value string) (DocumentStatus, error) {
	for _, candidate := range validDocumentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document status %q", value)
}
