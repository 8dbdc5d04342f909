package auth

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadualabs/vendorhub/forms"
	"github.com/kadualabs/vendorhub/internal/apitest"
	"github.com/kadualabs/vendorhub/pkg/cache"
	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/rest"
	"github.com/kadualabs/vendorhub/pkg/session"
)

type fixture struct {
	server  *apitest.Server
	service Service
	session *session.Store
	queries *cache.Queries
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server := apitest.NewServer(t)
	sess := session.NewStore(nil, nil)
	sess.Hydrate(context.Background())

	api, err := rest.NewClient(server.URL, rest.WithTokenSource(sess))
	require.NoError(t, err)

	queries := cache.New()
	return &fixture{
		server:  server,
		service: NewService(api, sess, queries, nil),
		session: sess,
		queries: queries,
	}
}

func validRegisterInput() forms.RegisterInput {
	return forms.RegisterInput{
		Name:            "Ama Mensah",
		Email:           "ama@example.com",
		Phone:           "+233201234567",
		Password:        "Sekret123",
		ConfirmPassword: "Sekret123",
		BusinessProfile: forms.BusinessProfileInput{
			BusinessName:     "Mensah Trading",
			BusinessAddress:  "12 High Street, Accra",
			BusinessPhone:    "+233201234567",
			BusinessCategory: "Fashion & Clothing",
		},
		GhanaCard: &rest.File{Name: "card.jpg", Content: strings.NewReader("front-and-back")},
	}
}

func TestLoginUpdatesSession(t *testing.T) {
	fx := newFixture(t)
	fx.server.Router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		apitest.DecodeBody(t, r, &req)
		assert.Equal(t, "ama@example.com", req["email"])
		apitest.WriteSuccess(w, map[string]any{
			"_id":           "vnd_1",
			"name":          "Ama Mensah",
			"email":         "ama@example.com",
			"role":          "vendor",
			"emailVerified": true,
			"token":         "tok-abc",
		}, "welcome back")
	})

	vendor, err := fx.service.Login(context.Background(), forms.LoginInput{
		Identifier: "ama@example.com",
		Password:   "Sekret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "vnd_1", vendor.ID)

	assert.True(t, fx.session.IsAuthenticated())
	assert.Equal(t, "tok-abc", fx.session.Token())
	require.NotNil(t, fx.session.Vendor())
	assert.Equal(t, "ama@example.com", fx.session.Vendor().Email)
}

func TestLoginRejectsBadCredentialsLocally(t *testing.T) {
	fx := newFixture(t)
	var calls int32
	fx.server.Router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		apitest.WriteSuccess(w, nil, "")
	})

	_, err := fx.service.Login(context.Background(), forms.LoginInput{Identifier: "nope!!", Password: "x"})
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Zero(t, atomic.LoadInt32(&calls), "validation failures must not reach the network")
	assert.False(t, fx.session.IsAuthenticated())
}

func TestLoginSurfacesServerRejection(t *testing.T) {
	fx := newFixture(t)
	fx.server.Router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteFailure(w, http.StatusBadRequest, "invalid credentials")
	})

	_, err := fx.service.Login(context.Background(), forms.LoginInput{
		Identifier: "ama@example.com",
		Password:   "Wrong123",
	})
	assert.True(t, pkgerrors.IsApplication(err))
	assert.Equal(t, "invalid credentials", pkgerrors.UserMessage(err))
	assert.False(t, fx.session.IsAuthenticated())
}

func TestRegisterVendorRequiresDocumentBeforeNetwork(t *testing.T) {
	fx := newFixture(t)
	var calls int32
	fx.server.Router.Post("/auth/register-vendor", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		apitest.WriteSuccess(w, nil, "")
	})

	input := validRegisterInput()
	input.GhanaCard = nil
	_, err := fx.service.RegisterVendor(context.Background(), input)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Ghana Card document is required", details["ghanaCard"])
	assert.Zero(t, atomic.LoadInt32(&calls), "no request may be issued without the document")
}

func TestRegisterVendorSendsMultipart(t *testing.T) {
	fx := newFixture(t)
	fx.server.Router.Post("/auth/register-vendor", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ama Mensah", r.FormValue("name"))
		assert.Equal(t, "+233201234567", r.FormValue("phone"))
		assert.Contains(t, r.FormValue("businessProfile"), `"businessName":"Mensah Trading"`)

		_, header, err := r.FormFile("ghanaCard")
		require.NoError(t, err)
		assert.Equal(t, "card.jpg", header.Filename)

		_, _, err = r.FormFile("businessCertificate")
		assert.Error(t, err, "absent optional document must be omitted")

		apitest.WriteSuccess(w, map[string]any{
			"_id":   "vnd_2",
			"name":  "Ama Mensah",
			"email": "ama@example.com",
			"role":  "vendor",
			"token": "tok-new",
		}, "registered")
	})

	vendor, err := fx.service.RegisterVendor(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, "vnd_2", vendor.ID)
	assert.Equal(t, "tok-new", fx.session.Token())
}

func TestVerifyEmailMarksSessionVerified(t *testing.T) {
	fx := newFixture(t)
	fx.session.SetVendor(context.Background(), *testVendor())

	fx.server.Router.Post("/auth/verify-email", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteSuccess(w, nil, "email verified")
	})

	require.NoError(t, fx.service.VerifyEmail(context.Background(), "verify-token"))
	require.NotNil(t, fx.session.Vendor())
	assert.True(t, fx.session.Vendor().EmailVerified)
}

func TestLogoutClearsLocallyEvenWhenServerFails(t *testing.T) {
	fx := newFixture(t)
	fx.session.SetVendor(context.Background(), *testVendor())
	fx.session.SetToken(context.Background(), "tok-abc")

	fx.server.Router.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteFailure(w, http.StatusInternalServerError, "boom")
	})

	err := fx.service.Logout(context.Background())
	assert.Error(t, err, "server failure is reported for logging")

	assert.False(t, fx.session.IsAuthenticated())
	assert.Nil(t, fx.session.Vendor())
	assert.Empty(t, fx.session.Token())
}

func TestEmailVerificationStatus(t *testing.T) {
	fx := newFixture(t)
	fx.server.Router.Get("/auth/verify-email/status", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteSuccess(w, map[string]bool{"emailVerified": true}, "")
	})

	verified, err := fx.service.EmailVerificationStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, verified)
}

func testVendor() *models.Vendor {
	return &models.Vendor{
		ID:    "vnd_1",
		Name:  "Ama Mensah",
		Email: "ama@example.com",
		Role:  models.RoleVendor,
	}
}
