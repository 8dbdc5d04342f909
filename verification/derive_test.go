package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kadualabs/vendorhub/pkg/enums"
	"github.com/kadualabs/vendorhub/pkg/models"
)

func TestIsVerifiedRequiresBothChecks(t *testing.T) {
	tests := []struct {
		name     string
		business bool
		email    bool
		want     bool
	}{
		{name: "neither", business: false, email: false, want: false},
		{name: "business only", business: true, email: false, want: false},
		{name: "email only", business: false, email: true, want: false},
		{name: "both", business: true, email: true, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := models.VerificationStatus{BusinessVerified: tc.business, EmailVerified: tc.email}
			assert.Equal(t, tc.want, IsVerified(s))
		})
	}
}

func TestCanSubmitForReview(t *testing.T) {
	tests := []struct {
		name   string
		status models.VerificationStatus
		want   bool
	}{
		{
			name: "documents in, not verified, not in review",
			status: models.VerificationStatus{
				DocumentsSubmitted: true,
				VerificationStage:  enums.VerificationStagePending,
			},
			want: true,
		},
		{
			name:   "no documents",
			status: models.VerificationStatus{VerificationStage: enums.VerificationStagePending},
			want:   false,
		},
		{
			name: "already verified",
			status: models.VerificationStatus{
				DocumentsSubmitted: true,
				BusinessVerified:   true,
			},
			want: false,
		},
		{
			name: "already under review",
			status: models.VerificationStatus{
				DocumentsSubmitted: true,
				VerificationStage:  enums.VerificationStageUnderReview,
			},
			want: false,
		},
		{
			name: "rejected can resubmit",
			status: models.VerificationStatus{
				DocumentsSubmitted: true,
				VerificationStage:  enums.VerificationStageRejected,
			},
			want: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanSubmitForReview(tc.status))
		})
	}
}

func TestDeriveIsPure(t *testing.T) {
	snapshot := models.VerificationStatus{
		BusinessVerified:   true,
		EmailVerified:      true,
		DocumentsSubmitted: true,
		VerificationStage:  enums.VerificationStageApproved,
	}

	first := Derive(snapshot)
	second := Derive(snapshot)
	assert.Equal(t, first, second)
	assert.True(t, first.IsVerified)
	assert.False(t, first.NeedsDocuments)
	assert.False(t, first.IsUnderReview)
	assert.False(t, first.IsRejected)
}

func TestDeriveZeroSnapshotReadsAsNotDone(t *testing.T) {
	flags := Derive(models.VerificationStatus{})
	assert.False(t, flags.IsVerified)
	assert.True(t, flags.NeedsDocuments)
	assert.False(t, flags.CanSubmitForReview)
	assert.False(t, flags.IsUnderReview)
	assert.False(t, flags.IsRejected)
}
