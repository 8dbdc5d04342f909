// Package auth signs vendors in and out and keeps the session store in sync
// with what the server returned.
package auth

import (
	"context"

	"go.uber.org/multierr"

	"github.com/kadualabs/vendorhub/forms"
	"github.com/kadualabs/vendorhub/pkg/cache"
	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/rest"
	"github.com/kadualabs/vendorhub/pkg/session"
)

type Service interface {
	Login(ctx context.Context, input forms.LoginInput) (*models.Vendor, error)
	RegisterVendor(ctx context.Context, input forms.RegisterInput) (*models.Vendor, error)
	GoogleAuth(ctx context.Context, token string) (*models.Vendor, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendEmailVerification(ctx context.Context) error
	EmailVerificationStatus(ctx context.Context) (bool, error)
	ForgotPassword(ctx context.Context, input forms.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input forms.ResetPasswordInput) error
	ChangePassword(ctx context.Context, input forms.ChangePasswordInput) error
	Logout(ctx context.Context) error
}

type service struct {
	api     *rest.Client
	session *session.Store
	queries *cache.Queries
	logg    *logger.Logger
}

func NewService(api *rest.Client, sess *session.Store, queries *cache.Queries, logg *logger.Logger) Service {
	return &service{api: api, session: sess, queries: queries, logg: logg}
}

func (s *service) Login(ctx context.Context, input forms.LoginInput) (*models.Vendor, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}

	envelope, err := s.api.PostJSON(ctx, "/auth/login", loginRequest{
		Email:    input.Identifier,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.applySessionPayload(ctx, envelope.DecodeData, "login")
}

// RegisterVendor submits the registration multipart. Input validation runs
// first, so a missing Ghana Card never reaches the network.
func (s *service) RegisterVendor(ctx context.Context, input forms.RegisterInput) (*models.Vendor, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}

	form := rest.NewForm().
		Field("name", input.Name).
		Field("email", input.Email).
		Field("password", input.Password).
		Field("phone", input.Phone).
		JSONField("businessProfile", input.BusinessProfile).
		AddFile("ghanaCard", input.GhanaCard).
		AddFile("businessCertificate", input.BusinessCertificate)

	envelope, err := s.api.PostForm(ctx, "/auth/register-vendor", form)
	if err != nil {
		return nil, err
	}
	return s.applySessionPayload(ctx, envelope.DecodeData, "registration")
}

func (s *service) GoogleAuth(ctx context.Context, token string) (*models.Vendor, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "google token is required")
	}
	envelope, err := s.api.PostJSON(ctx, "/auth/google", googleAuthRequest{
		Token: token,
		Role:  models.RoleVendor,
	})
	if err != nil {
		return nil, err
	}
	return s.applySessionPayload(ctx, envelope.DecodeData, "google sign-in")
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification token is required")
	}
	if _, err := s.api.PostJSON(ctx, "/auth/verify-email", verifyEmailRequest{Token: token}); err != nil {
		return err
	}

	verified := true
	s.session.UpdateVendor(ctx, models.VendorPatch{EmailVerified: &verified})
	s.queries.Invalidate(cache.Key("verification"))
	return nil
}

func (s *service) ResendEmailVerification(ctx context.Context) error {
	_, err := s.api.PostJSON(ctx, "/auth/verify-email/resend", nil)
	return err
}

func (s *service) EmailVerificationStatus(ctx context.Context) (bool, error) {
	envelope, err := s.api.GetJSON(ctx, "/auth/verify-email/status", nil)
	if err != nil {
		return false, err
	}
	var payload emailVerificationStatus
	if err := envelope.DecodeData(&payload); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding email verification status")
	}
	return payload.EmailVerified, nil
}

func (s *service) ForgotPassword(ctx context.Context, input forms.ForgotPasswordInput) error {
	if err := forms.Validate(input); err != nil {
		return err
	}
	_, err := s.api.PostJSON(ctx, "/auth/forgot-password", forgotPasswordRequest{Email: input.Email})
	return err
}

func (s *service) ResetPassword(ctx context.Context, input forms.ResetPasswordInput) error {
	if err := forms.Validate(input); err != nil {
		return err
	}
	_, err := s.api.PostJSON(ctx, "/auth/reset-password", resetPasswordRequest{
		Token:       input.Token,
		NewPassword: input.NewPassword,
	})
	return err
}

func (s *service) ChangePassword(ctx context.Context, input forms.ChangePasswordInput) error {
	if err := forms.Validate(input); err != nil {
		return err
	}
	_, err := s.api.PostJSON(ctx, "/auth/change-password", changePasswordRequest{
		CurrentPassword: input.CurrentPassword,
		NewPassword:     input.NewPassword,
	})
	return err
}

// Logout is best-effort: the local session and cache are always cleared,
// even when the server call fails. The aggregated error is for logging, not
// for blocking the sign-out.
func (s *service) Logout(ctx context.Context) error {
	var errs error
	if _, err := s.api.PostJSON(ctx, "/auth/logout", nil); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "server logout failed, clearing local session anyway")
		}
		errs = multierr.Append(errs, err)
	}

	s.queries.Reset()
	errs = multierr.Append(errs, s.session.Logout(ctx))
	return errs
}

func (s *service) applySessionPayload(ctx context.Context, decode func(any) error, action string) (*models.Vendor, error) {
	var payload sessionPayload
	if err := decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding "+action+" response")
	}

	// Fresh identity: drop everything cached for the previous one.
	s.queries.Reset()
	s.session.SetToken(ctx, payload.Token)
	s.session.SetVendor(ctx, payload.Vendor)

	if s.logg != nil {
		ctx = s.logg.WithVendorID(ctx, payload.Vendor.ID)
		s.logg.Info(ctx, action+" succeeded")
	}

	vendor := payload.Vendor
	return &vendor, nil
}
