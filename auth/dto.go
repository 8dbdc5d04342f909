package auth

import (
	"github.com/kadualabs/vendorhub/pkg/models"
)

// sessionPayload is the data block login, registration, and google sign-in
// all return: the vendor record plus a bearer token.
type sessionPayload struct {
	models.Vendor
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleAuthRequest struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type emailVerificationStatus struct {
	EmailVerified bool `json:"emailVerified"`
}
