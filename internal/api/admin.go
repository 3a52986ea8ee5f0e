package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
)

type AdminAPI struct {
	client *Client
	*ResourceAPI
}

func NewAdminAPI(client *Client, resources *ResourceAPI) *AdminAPI {
	if resources == nil {
		resources = NewResourceAPI(client)
	}
	return &AdminAPI{client: client, ResourceAPI: resources}
}

func (a *AdminAPI) Users(ctx context.Context, filters model.UserFilters) (*model.UserList, error) {
	query := url.Values{}
	if filters.Role != "" {
		query.Set("role", string(filters.Role))
	}
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}

	var out model.UserList
	if err := a.client.do(ctx, request{method: http.MethodGet, path: "/users", query: query}, &out); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []model.UserSummary{}
	}
	return &out, nil
}

func (a *AdminAPI) UpdateUser(ctx context.Context, userID int64, input model.UserUpdate) (*model.UserEnvelope, error) {
	if userID <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	var out model.UserEnvelope
	if err := a.client.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/users/%d", userID), body: input}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, missingField("user")
	}
	return &out, nil
}

// ChangeUserStatus returns the server's envelope; User may be nil when the
// API answers with only a message.
func (a *AdminAPI) ChangeUserStatus(ctx context.Context, userID int64, status model.UserStatus) (*model.UserEnvelope, error) {
	if userID <= 0 {
		return nil, customErrors.ErrInvalidID
	}
	var out model.UserEnvelope
	err := a.client.do(ctx, request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/users/%d/status", userID),
		body:   model.UserStatusInput{Status: status},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
