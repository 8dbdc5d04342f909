// Package onboarding derives the fixed post-registration checklist from a
// vendor snapshot. The mapping is pure: it holds no state and recomputes the
// same steps for the same vendor every time.
package onboarding

import (
	"github.com/kadualabs/vendorhub/pkg/enums"
	"github.com/kadualabs/vendorhub/pkg/models"
)

// Step ids, in display order.
const (
	StepEmailVerification    = "email-verification"
	StepDocumentVerification = "document-verification"
	StepBusinessVerification = "business-verification"
	StepProfileCompletion    = "profile-completion"
)

// Step is one onboarding milestone shown on the progress screen.
type Step struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      enums.StepStatus `json:"status"`
	Required    bool             `json:"required"`
}

// Progress is the derived checklist plus the flags the step statuses alone
// cannot express: the document step treats "has a business profile" as its
// completion proxy, so the underlying facts are surfaced separately.
type Progress struct {
	Steps                 []Step `json:"steps"`
	HasBusinessProfile    bool   `json:"hasBusinessProfile"`
	CanProceedToDashboard bool   `json:"canProceedToDashboard"`
}

// Steps maps a vendor snapshot onto the four fixed milestones. A nil vendor
// yields every step pending.
func Steps(vendor *models.Vendor) []Step {
	var (
		emailVerified      bool
		businessVerified   bool
		hasBusinessProfile bool
	)
	if vendor != nil {
		emailVerified = vendor.EmailVerified
		businessVerified = vendor.BusinessVerified
		hasBusinessProfile = vendor.BusinessProfile != nil
	}

	businessStatus := enums.StepStatusPending
	if vendor != nil {
		// Admin review starts as soon as the account exists, so the step is
		// never merely pending for a real vendor.
		businessStatus = enums.StepStatusInProgress
		if businessVerified {
			businessStatus = enums.StepStatusCompleted
		}
	}

	return []Step{
		{
			ID:          StepEmailVerification,
			Title:       "Email Verification",
			Description: "Verify your email address to activate your account",
			Status:      completedWhen(emailVerified),
			Required:    true,
		},
		{
			ID:          StepDocumentVerification,
			Title:       "Document Verification",
			Description: "Upload required documents for business verification",
			Status:      completedWhen(hasBusinessProfile),
			Required:    true,
		},
		{
			ID:          StepBusinessVerification,
			Title:       "Business Verification",
			Description: "Admin review of your business information",
			Status:      businessStatus,
			Required:    true,
		},
		{
			ID:          StepProfileCompletion,
			Title:       "Profile Completion",
			Description: "Complete your business profile setup",
			Status:      completedWhen(hasBusinessProfile),
			Required:    false,
		},
	}
}

// CanProceed reports whether every required step is completed.
func CanProceed(steps []Step) bool {
	for _, step := range steps {
		if step.Required && step.Status != enums.StepStatusCompleted {
			return false
		}
	}
	return true
}

// Derive builds the full progress view for a vendor snapshot.
func Derive(vendor *models.Vendor) Progress {
	steps := Steps(vendor)
	return Progress{
		Steps:                 steps,
		HasBusinessProfile:    vendor != nil && vendor.BusinessProfile != nil,
		CanProceedToDashboard: CanProceed(steps),
	}
}

func completedWhen(done bool) enums.StepStatus {
	if done {
		return enums.StepStatusCompleted
	}
	return enums.StepStatusPending
}
