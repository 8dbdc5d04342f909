// Package verification tracks the document-review pipeline a vendor walks
// through before they can sell.
package verification

import (
	"github.com/kadualabs/vendorhub/pkg/enums"
	"github.com/kadualabs/vendorhub/pkg/models"
)

// Flags is the full derived view of a verification snapshot. Every field is
// computed from the snapshot alone; deriving twice from equal snapshots
// yields equal flags.
type Flags struct {
	IsVerified         bool
	CanSubmitForReview bool
	NeedsDocuments     bool
	IsUnderReview      bool
	IsRejected         bool
}

// IsVerified requires both the admin business review and the email check to
// have passed.
func IsVerified(s models.VerificationStatus) bool {
	return s.BusinessVerified && s.EmailVerified
}

// CanSubmitForReview allows submission once documents are in, as long as the
// vendor is not already verified and not currently in review. Submitting
// again while under review is a no-op server-side, so the gate is purely UX.
func CanSubmitForReview(s models.VerificationStatus) bool {
	return s.DocumentsSubmitted &&
		!s.BusinessVerified &&
		s.VerificationStage != enums.VerificationStageUnderReview
}

func NeedsDocuments(s models.VerificationStatus) bool {
	return !s.DocumentsSubmitted
}

func IsUnderReview(s models.VerificationStatus) bool {
	return s.VerificationStage == enums.VerificationStageUnderReview
}

func IsRejected(s models.VerificationStatus) bool {
	return s.VerificationStage == enums.VerificationStageRejected
}

// Derive computes all flags at once. Absent fields in a partial snapshot are
// zero values and therefore read as "not done", never as "done".
func Derive(s models.VerificationStatus) Flags {
	return Flags{
		IsVerified:         IsVerified(s),
		CanSubmitForReview: CanSubmitForReview(s),
		NeedsDocuments:     NeedsDocuments(s),
		IsUnderReview:      IsUnderReview(s),
		IsRejected:         IsRejected(s),
	}
}
