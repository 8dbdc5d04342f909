// Package profile reads and edits the signed-in vendor's account, business
// documents, and store settings.
package profile

import (
	"context"

	"github.com/kadualabs/vendorhub/forms"
	"github.com/kadualabs/vendorhub/pkg/cache"
	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/rest"
	"github.com/kadualabs/vendorhub/pkg/session"
)

const (
	profilePath = "/auth/vendor/profile"
	mePath      = "/auth/me"
)

// Documents bundles the verification files a vendor can attach. Nil entries
// are left out of the multipart body entirely.
type Documents struct {
	GhanaCard           *rest.File
	BusinessCertificate *rest.File
}

type Service interface {
	Get(ctx context.Context) (*models.Vendor, error)
	Update(ctx context.Context, input forms.ProfileUpdateInput) (*models.Vendor, error)
	UploadDocuments(ctx context.Context, docs Documents) (*models.Vendor, error)
	UploadProfilePicture(ctx context.Context, image *rest.File) (*models.Vendor, error)
	UploadStoreLogo(ctx context.Context, image *rest.File) (*models.Vendor, error)
	UploadStoreBanner(ctx context.Context, image *rest.File) (*models.Vendor, error)
	UpdateStoreSettings(ctx context.Context, input forms.StoreSettingsInput) error
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

// Get returns the current profile, served from cache inside the freshness
// window so successive screens don't refetch it.
func (s *service) Get(ctx context.Context) (*models.Vendor, error) {
	return cache.Fetch(ctx, s.queries, cache.Key("profile", "me"), func(ctx context.Context) (*models.Vendor, error) {
		envelope, err := s.api.GetJSON(ctx, mePath, nil)
		if err != nil {
			return nil, err
		}
		var vendor models.Vendor
		if err := envelope.DecodeData(&vendor); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding profile")
		}
		return &vendor, nil
	})
}

func (s *service) Update(ctx context.Context, input forms.ProfileUpdateInput) (*models.Vendor, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	envelope, err := s.api.PatchJSON(ctx, profilePath, input)
	if err != nil {
		return nil, err
	}
	return s.applyVendorPayload(ctx, envelope.DecodeData)
}

func (s *service) UploadDocuments(ctx context.Context, docs Documents) (*models.Vendor, error) {
	form := rest.NewForm().
		AddFile("ghanaCard", docs.GhanaCard).
		AddFile("businessCertificate", docs.BusinessCertificate)
	if form.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one document is required")
	}

	envelope, err := s.api.PatchForm(ctx, profilePath, form)
	if err != nil {
		return nil, err
	}
	return s.applyVendorPayload(ctx, envelope.DecodeData)
}

func (s *service) UploadProfilePicture(ctx context.Context, image *rest.File) (*models.Vendor, error) {
	return s.uploadSingleImage(ctx, profilePath+"/profile-picture", "profilePicture", image)
}

func (s *service) UploadStoreLogo(ctx context.Context, image *rest.File) (*models.Vendor, error) {
	return s.uploadSingleImage(ctx, profilePath+"/store-logo", "storeLogo", image)
}

func (s *service) UploadStoreBanner(ctx context.Context, image *rest.File) (*models.Vendor, error) {
	return s.uploadSingleImage(ctx, profilePath+"/store-banner", "storeBanner", image)
}

func (s *service) UpdateStoreSettings(ctx context.Context, input forms.StoreSettingsInput) error {
	if err := forms.Validate(input); err != nil {
		return err
	}
	if _, err := s.api.PatchJSON(ctx, profilePath+"/store-settings", input); err != nil {
		return err
	}
	s.queries.Invalidate(cache.Key("profile"))
	return nil
}

func (s *service) uploadSingleImage(ctx context.Context, path, field string, image *rest.File) (*models.Vendor, error) {
	form := rest.NewForm().AddFile(field, image)
	if form.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" image is required")
	}
	envelope, err := s.api.PatchForm(ctx, path, form)
	if err != nil {
		return nil, err
	}
	return s.applyVendorPayload(ctx, envelope.DecodeData)
}

// applyVendorPayload merges a mutation response into the session and drops
// the cached reads it may have changed.
func (s *service) applyVendorPayload(ctx context.Context, decode func(any) error) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := decode(&vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding profile response")
	}

	s.session.SetVendor(ctx, vendor)
	s.queries.Invalidate(cache.Key("profile"), cache.Key("verification"))
	return &vendor, nil
}
