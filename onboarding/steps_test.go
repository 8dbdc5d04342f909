package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadualabs/vendorhub/pkg/enums"
	"github.com/kadualabs/vendorhub/pkg/models"
)

func stepByID(t *testing.T, steps []Step, id string) Step {
	t.Helper()
	for _, step := range steps {
		if step.ID == id {
			return step
		}
	}
	t.Fatalf("step %q not found", id)
	return Step{}
}

func TestStepsForNilVendor(t *testing.T) {
	steps := Steps(nil)
	require.Len(t, steps, 4)
	for _, step := range steps {
		assert.Equal(t, enums.StepStatusPending, step.Status, step.ID)
	}
	assert.False(t, CanProceed(steps))
}

func TestDocumentStepFollowsBusinessProfile(t *testing.T) {
	vendor := &models.Vendor{ID: "vnd_1"}

	step := stepByID(t, Steps(vendor), StepDocumentVerification)
	assert.Equal(t, enums.StepStatusPending, step.Status)

	vendor.BusinessProfile = &models.BusinessProfile{BusinessName: "Mensah Trading"}
	step = stepByID(t, Steps(vendor), StepDocumentVerification)
	assert.Equal(t, enums.StepStatusCompleted, step.Status)

	// Mapping is idempotent: rerunning changes nothing.
	again := stepByID(t, Steps(vendor), StepDocumentVerification)
	assert.Equal(t, step, again)
}

func TestBusinessVerificationNeverPendingForRealVendor(t *testing.T) {
	vendor := &models.Vendor{ID: "vnd_1"}
	step := stepByID(t, Steps(vendor), StepBusinessVerification)
	assert.Equal(t, enums.StepStatusInProgress, step.Status)

	vendor.BusinessVerified = true
	step = stepByID(t, Steps(vendor), StepBusinessVerification)
	assert.Equal(t, enums.StepStatusCompleted, step.Status)
}

func TestProfileCompletionIsOptional(t *testing.T) {
	step := stepByID(t, Steps(&models.Vendor{ID: "vnd_1"}), StepProfileCompletion)
	assert.False(t, step.Required)
}

func TestCanProceedRequiresEveryRequiredStep(t *testing.T) {
	steps := []Step{
		{ID: "a", Required: true, Status: enums.StepStatusCompleted},
		{ID: "b", Required: true, Status: enums.StepStatusInProgress},
		{ID: "c", Required: false, Status: enums.StepStatusPending},
	}
	assert.False(t, CanProceed(steps))

	steps[1].Status = enums.StepStatusCompleted
	assert.True(t, CanProceed(steps))
}

func TestDeriveSurfacesProfileFlagSeparately(t *testing.T) {
	vendor := &models.Vendor{
		ID:               "vnd_1",
		EmailVerified:    true,
		BusinessVerified: true,
		BusinessProfile:  &models.BusinessProfile{BusinessName: "Mensah Trading"},
	}

	progress := Derive(vendor)
	assert.True(t, progress.HasBusinessProfile)
	assert.True(t, progress.CanProceedToDashboard)

	vendor.BusinessProfile = nil
	progress = Derive(vendor)
	assert.False(t, progress.HasBusinessProfile)
	assert.False(t, progress.CanProceedToDashboard)
}
