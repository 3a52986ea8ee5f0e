package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
)

type ResourceAPI struct {
	client *Client
}

func NewResourceAPI(client *Client) *ResourceAPI {
	return &ResourceAPI{client: client}
}

func publicQuery(f model.ResourceFilters) url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

func scopedQuery(f model.ResourceFilters) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.ProviderID > 0 {
		q.Set("provider_id", strconv.FormatInt(f.ProviderID, 10))
	}
	return q
}

func (r *ResourceAPI) list(ctx context.Context, path string, query url.Values) (*model.ResourceList, error) {
	var out model.ResourceList
	if err := r.client.do(ctx, request{method: http.MethodGet, path: path, query: query}, &out); err != nil {
		return nil, err
	}
	if out.Resources == nil {
		out.Resources = []model.Resource{}
	}
	return &out, nil
}

// List returns approved resources. Only category, location and search
// filters are sent.
func (r *ResourceAPI) List(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return r.list(ctx, "/resources", publicQuery(filters))
}

// Mine returns the caller's own resources in every status.
func (r *ResourceAPI) Mine(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	filters.ProviderID = 0
	return r.list(ctx, "/resources/my", scopedQuery(filters))
}

// All is the admin listing across every status.
func (r *ResourceAPI) All(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return r.list(ctx, "/resources/all", scopedQuery(filters))
}

func (r *ResourceAPI) Pending(ctx context.Context) (*model.ResourceList, error) {
	return r.All(ctx, model.ResourceFilters{Status: model.ResourceStatusPending})
}

func (r *ResourceAPI) single(ctx context.Context, method, path string, body any) (*model.ResourceEnvelope, error) {
	var out model.ResourceEnvelope
	if err := r.client.do(ctx, request{method: method, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	if out.Resource == nil {
		return nil, missingField("resource")
	}
	return &out, nil
}

func (r *ResourceAPI) Get(ctx context.Context, id int64) (*model.ResourceEnvelope, error) {
	if id <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	return r.single(ctx, http.MethodGet, fmt.Sprintf("/resources/%d", id), nil)
}

func (r *ResourceAPI) Create(ctx context.Context, input model.ResourceInput) (*model.ResourceEnvelope, error) {
	return r.single(ctx, http.MethodPost, "/resources", input)
}

func (r *ResourceAPI) Update(ctx context.Context, id int64, input model.ResourceInput) (*model.ResourceEnvelope, error) {
	if id <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	return r.single(ctx, http.MethodPut, fmt.Sprintf("/resources/%d", id), input)
}

func (r *ResourceAPI) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	if id <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	var out model.MessageResponse
	if err := r.client.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/resources/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Review approves or rejects a resource. The reason is sent as given; an
// empty rejection reason is left for the API to refuse.
func (r *ResourceAPI) Review(ctx context.Context, id int64, input model.ApprovalInput) (*model.ResourceEnvelope, error) {
	if id <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	var out model.ResourceEnvelope
	err := r.client.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("/resources/%d/approval", id), body: input}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
