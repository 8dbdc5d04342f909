package products

import (
	"net/url"
	"strconv"

	"github.com/kadualabs/vendorhub/pkg/enums"
	"github.com/kadualabs/vendorhub/pkg/models"
	"github.com/kadualabs/vendorhub/pkg/pagination"
	"github.com/kadualabs/vendorhub/pkg/types"
)

// ListFilters narrows the catalog list. Zero-valued filters are omitted from
// the query string entirely; a "status=all" filter means no status filter.
type ListFilters struct {
	Status   string
	Category string
	Search   string
	SortBy   enums.ProductSort
	Page     int
	Limit    int
}

func (f ListFilters) query() url.Values {
	params := url.Values{}
	if f.Status != "" && f.Status != "all" {
		params.Set("status", f.Status)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.SortBy != "" {
		params.Set("sortBy", f.SortBy.String())
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(pagination.NormalizePage(f.Page)))
	}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(pagination.NormalizeLimit(f.Limit)))
	}
	return params
}

// SearchFilters narrows a free-text product search.
type SearchFilters struct {
	Category string
	Status   string
	Limit    int
}

// List is one page of catalog results.
type List struct {
	Products   []models.Product `json:"products"`
	Pagination types.Pagination `json:"pagination"`
}

// BulkUpdates is the patch applied to every product in a bulk operation.
type BulkUpdates struct {
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

type bulkUpdateRequest struct {
	ProductIDs []string    `json:"productIds"`
	Updates    BulkUpdates `json:"updates"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// ImageOrder pins one image id to a display position.
type ImageOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type reorderRequest struct {
	ImageOrders []ImageOrder `json:"imageOrders"`
}

type imagesPayload struct {
	Images []models.ProductImage `json:"images"`
}

type videoPayload struct {
	Video models.ProductVideo `json:"video"`
}

type variantPayload struct {
	Variant models.ProductVariant `json:"variant"`
}

type bulkUpdatedPayload struct {
	Updated int `json:"updated"`
}
