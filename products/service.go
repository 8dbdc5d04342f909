// Package products manages the vendor's catalog: CRUD, media, variants, and
// the stats strip on the products screen.
package products

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kadualabs/vendorhub/forms"
	"github.com/kadualabs/vendorhub/pkg/cache"
	"github.com/kadualabs/vendorhub/pkg/enums"
	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
	"github.com/kadualabs/vendorhub/pkg/logger"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/pagination"
	"github.com/kadualabs/vendorhub/pkg/rest"
)

const basePath = "/vendor/products"

// cachePrefix covers every cached product read; any mutation drops the lot.
const cachePrefix = "products"

type Service interface {
	List(ctx context.Context, filters ListFilters) (*List, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input forms.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input forms.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) (*models.Product, error)
	UpdateStatus(ctx context.Context, id string, status enums.ProductStatus) (*models.Product, error)
	Duplicate(ctx context.Context, id string) (*models.Product, error)
	BulkUpdate(ctx context.Context, ids []string, updates BulkUpdates) (int, error)
	Search(ctx context.Context, query string, filters SearchFilters) (*List, error)
	Stats(ctx context.Context) (*models.ProductStats, error)

	UploadImages(ctx context.Context, productID string, images []*rest.File) ([]models.ProductImage, error)
	ReorderImages(ctx context.Context, productID string, orders []ImageOrder) error
	DeleteImage(ctx context.Context, productID, imageID string) error
	SetMainImage(ctx context.Context, productID, imageID string) error
	UploadVideo(ctx context.Context, productID string, video *rest.File) (*models.ProductVideo, error)
	DeleteVideo(ctx context.Context, productID string) error

	AddVariant(ctx context.Context, productID string, input forms.VariantInput) (*models.ProductVariant, error)
	UpdateVariant(ctx context.Context, productID, variantID string, input forms.VariantInput) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID string) error
}

type service struct {
	api     *rest.Client
	queries *cache.Queries
	logg    *logger.Logger
}

func NewService(api *rest.Client, queries *cache.Queries, logg *logger.Logger) Service {
	return &service{api: api, queries: queries, logg: logg}
}

func (s *service) List(ctx context.Context, filters ListFilters) (*List, error) {
	params := filters.query()
	key := cache.Key(cachePrefix, "list", params.Encode())
	return cache.Fetch(ctx, s.queries, key, func(ctx context.Context) (*List, error) {
		envelope, err := s.api.GetJSON(ctx, basePath, params)
		if err != nil {
			return nil, err
		}
		var list List
		if err := envelope.DecodeData(&list); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding product list")
		}
		return &list, nil
	})
}

func (s *service) Get(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	key := cache.Key(cachePrefix, "detail", id)
	return cache.Fetch(ctx, s.queries, key, func(ctx context.Context) (*models.Product, error) {
		envelope, err := s.api.GetJSON(ctx, basePath+"/"+id, nil)
		if err != nil {
			return nil, err
		}
		return decodeProduct(envelope.DecodeData)
	})
}

func (s *service) Create(ctx context.Context, input forms.ProductInput) (*models.Product, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	envelope, err := s.api.PostJSON(ctx, basePath, input)
	if err != nil {
		return nil, err
	}
	return s.applyProductPayload(envelope.DecodeData)
}

func (s *service) Update(ctx context.Context, id string, input forms.ProductInput) (*models.Product, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	envelope, err := s.api.PutJSON(ctx, basePath+"/"+id, input)
	if err != nil {
		return nil, err
	}
	return s.applyProductPayload(envelope.DecodeData)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.api.Delete(ctx, basePath+"/"+id); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) Archive(ctx context.Context, id string) (*models.Product, error) {
	envelope, err := s.api.PatchJSON(ctx, basePath+"/"+id+"/archive", nil)
	if err != nil {
		return nil, err
	}
	return s.applyProductPayload(envelope.DecodeData)
}

// UpdateStatus moves a product between draft, published, and hidden. Setting
// the status it already has is accepted and changes nothing.
func (s *service) UpdateStatus(ctx context.Context, id string, status enums.ProductStatus) (*models.Product, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown product status %q", status))
	}
	envelope, err := s.api.PatchJSON(ctx, basePath+"/"+id+"/status", statusUpdateRequest{Status: status.String()})
	if err != nil {
		return nil, err
	}
	return s.applyProductPayload(envelope.DecodeData)
}

func (s *service) Duplicate(ctx context.Context, id string) (*models.Product, error) {
	envelope, err := s.api.PostJSON(ctx, basePath+"/"+id+"/duplicate", nil)
	if err != nil {
		return nil, err
	}
	return s.applyProductPayload(envelope.DecodeData)
}

func (s *service) BulkUpdate(ctx context.Context, ids []string, updates BulkUpdates) (int, error) {
	if len(ids) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "at least one product id is required")
	}
	envelope, err := s.api.PatchJSON(ctx, basePath+"/bulk", bulkUpdateRequest{ProductIDs: ids, Updates: updates})
	if err != nil {
		return 0, err
	}
	var payload bulkUpdatedPayload
	if err := envelope.DecodeData(&payload); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding bulk update response")
	}
	s.queries.Invalidate(cachePrefix)
	return payload.Updated, nil
}

func (s *service) Search(ctx context.Context, query string, filters SearchFilters) (*List, error) {
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.Status != "" {
		params.Set("status", filters.Status)
	}
	if filters.Limit > 0 {
		params.Set("limit", strconv.Itoa(pagination.NormalizeLimit(filters.Limit)))
	}

	key := cache.Key(cachePrefix, "search", params.Encode())
	return cache.Fetch(ctx, s.queries, key, func(ctx context.Context) (*List, error) {
		envelope, err := s.api.GetJSON(ctx, basePath+"/search", params)
		if err != nil {
			return nil, err
		}
		var list List
		if err := envelope.DecodeData(&list); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding search results")
		}
		return &list, nil
	})
}

func (s *service) Stats(ctx context.Context) (*models.ProductStats, error) {
	return cache.Fetch(ctx, s.queries, cache.Key(cachePrefix, "stats"), func(ctx context.Context) (*models.ProductStats, error) {
		envelope, err := s.api.GetJSON(ctx, basePath+"/stats", nil)
		if err != nil {
			return nil, err
		}
		var stats models.ProductStats
		if err := envelope.DecodeData(&stats); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding product stats")
		}
		return &stats, nil
	})
}

// UploadImages sends each image under the repeated "images" field with a
// positional order field alongside, matching the upload contract.
func (s *service) UploadImages(ctx context.Context, productID string, images []*rest.File) ([]models.ProductImage, error) {
	if len(images) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}
	form := rest.NewForm()
	for i, image := range images {
		form.AddFile("images", image)
		form.IntField(fmt.Sprintf("order_%d", i), i)
	}

	envelope, err := s.api.PostForm(ctx, basePath+"/"+productID+"/images", form)
	if err != nil {
		return nil, err
	}
	var payload imagesPayload
	if err := envelope.DecodeData(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding uploaded images")
	}
	s.queries.Invalidate(cachePrefix)
	return payload.Images, nil
}

func (s *service) ReorderImages(ctx context.Context, productID string, orders []ImageOrder) error {
	if len(orders) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "image order list is required")
	}
	if _, err := s.api.PatchJSON(ctx, basePath+"/"+productID+"/images/reorder", reorderRequest{ImageOrders: orders}); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) DeleteImage(ctx context.Context, productID, imageID string) error {
	if _, err := s.api.Delete(ctx, basePath+"/"+productID+"/images/"+imageID); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) SetMainImage(ctx context.Context, productID, imageID string) error {
	if _, err := s.api.PatchJSON(ctx, basePath+"/"+productID+"/images/"+imageID+"/main", nil); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) UploadVideo(ctx context.Context, productID string, video *rest.File) (*models.ProductVideo, error) {
	form := rest.NewForm().AddFile("video", video)
	if form.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "video file is required")
	}

	envelope, err := s.api.PostForm(ctx, basePath+"/"+productID+"/video", form)
	if err != nil {
		return nil, err
	}
	var payload videoPayload
	if err := envelope.DecodeData(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding uploaded video")
	}
	s.queries.Invalidate(cachePrefix)
	return &payload.Video, nil
}

func (s *service) DeleteVideo(ctx context.Context, productID string) error {
	if _, err := s.api.Delete(ctx, basePath+"/"+productID+"/video"); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) AddVariant(ctx context.Context, productID string, input forms.VariantInput) (*models.ProductVariant, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	envelope, err := s.api.PostJSON(ctx, basePath+"/"+productID+"/variants", input)
	if err != nil {
		return nil, err
	}
	return s.applyVariantPayload(envelope.DecodeData)
}

func (s *service) UpdateVariant(ctx context.Context, productID, variantID string, input forms.VariantInput) (*models.ProductVariant, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	envelope, err := s.api.PutJSON(ctx, basePath+"/"+productID+"/variants/"+variantID, input)
	if err != nil {
		return nil, err
	}
	return s.applyVariantPayload(envelope.DecodeData)
}

func (s *service) DeleteVariant(ctx context.Context, productID, variantID string) error {
	if _, err := s.api.Delete(ctx, basePath+"/"+productID+"/variants/"+variantID); err != nil {
		return err
	}
	s.queries.Invalidate(cachePrefix)
	return nil
}

func (s *service) applyProductPayload(decode func(any) error) (*models.Product, error) {
	product, err := decodeProduct(decode)
	if err != nil {
		return nil, err
	}
	s.queries.Invalidate(cachePrefix)
	return product, nil
}

func (s *service) applyVariantPayload(decode func(any) error) (*models.ProductVariant, error) {
	var payload variantPayload
	if err := decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding variant response")
	}
	s.queries.Invalidate(cachePrefix)
	return &payload.Variant, nil
}

func decodeProduct(decode func(any) error) (*models.Product, error) {
	var product models.Product
	if err := decode(&product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "decoding product")
	}
	return &product, nil
}
