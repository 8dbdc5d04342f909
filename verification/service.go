package verification

import (
	"context"

	"github.com/kadualabs/vendorhub/pkg/cache"
	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/rest"
)

const verificationPath = "/auth/me"

// Documents are the files attached to a verification upload; nil entries are
// omitted from the body.
type Documents struct {
	GhanaCard           *rest.File
	BusinessCertificate *rest.File
}

// DocumentRequirement describes one document the review pipeline expects,
// as advertised by the server.
type DocumentRequirement struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Formats     []string `json:"formats"`
	MaxSize     string   `json:"maxSize"`
}

type Service interface {
	Status(ctx context.Context) (*models.VerificationStatus, error)
	UploadDocuments(ctx context.Context, docs Documents) error
	SubmitForReview(ctx context.Context) error
	RequestReverification(ctx context.Context) error
	Requirements(ctx context.Context) ([]DocumentRequirement, error)
}

type service struct {
	api     *rest.Client
	queries *cache.Queries
	logg    *logger.Logger
}

func NewService(api *rest.Client, queries *cache.Queries, logg *logger.Logger) Service {
	return &service{api: api, queries: queries, logg: logg}
}

func (s *service) Status(ctx context.Context) (*models.VerificationStatus, error) {
	return cache.Fetch(ctx, s.queries, cache.Key("verification", "status"), func(ctx context.Context) (*models.VerificationStatus, error) {
		envelope, err := s.api.GetJSON(ctx, verificationPath, nil)
		if err != nil {
			return nil, err
		}
		var status models.VerificationStatus
		if err := envelope.DecodeData(&status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding verification status")
		}
		return &status, nil
	})
}

func (s *service) UploadDocuments(ctx context.Context, docs Documents) error {
	form := rest.NewForm().
		AddFile("ghanaCard", docs.GhanaCard).
		AddFile("businessCertificate", docs.BusinessCertificate)
	if form.Len() == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one document is required")
	}

	if _, err := s.api.PatchForm(ctx, "/auth/vendor/profile", form); err != nil {
		return err
	}
	s.queries.Invalidate(cache.Key("verification"), cache.Key("profile"))
	return nil
}

// SubmitForReview asks the server to start the admin review. The endpoint is
// idempotent; re-submitting while already under review changes nothing.
func (s *service) SubmitForReview(ctx context.Context) error {
	if _, err := s.api.PostJSON(ctx, verificationPath+"/submit-review", nil); err != nil {
		return err
	}
	s.queries.Invalidate(cache.Key("verification"))
	return nil
}

func (s *service) RequestReverification(ctx context.Context) error {
	if _, err := s.api.PostJSON(ctx, verificationPath+"/re-verify", nil); err != nil {
		return err
	}
	s.queries.Invalidate(cache.Key("verification"))
	return nil
}

func (s *service) Requirements(ctx context.Context) ([]DocumentRequirement, error) {
	return cache.Fetch(ctx, s.queries, cache.Key("verification", "requirements"), func(ctx context.Context) ([]DocumentRequirement, error) {
		envelope, err := s.api.GetJSON(ctx, verificationPath+"/requirements", nil)
		if err != nil {
			return nil, err
		}
		var requirements []DocumentRequirement
		if err := envelope.DecodeData(&requirements); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding verification requirements")
		}
		return requirements, nil
	})
}
