package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
)

type ProfileAPI struct {
	client  *Client
	session SessionStore
}

func NewProfileAPI(client *Client, session SessionStore) *ProfileAPI {
	return &ProfileAPI{client: client, session: session}
}

func (p *ProfileAPI) currentUserID(ctx context.Context) (int64, error) {
	user, err := p.session.User(ctx)
	if err != nil {
		return 0, customErrors.Transport(err)
	}
	if user == nil {
		return 0, customErrors.ErrNotAuthenticated
	}
	return user.ID, nil
}

// CurrentProfile fetches the signed-in user's profile. It fails with
// ErrNotAuthenticated, without a request, when no user is stored.
func (p *ProfileAPI) CurrentProfile(ctx context.Context) (*model.Profile, error) {
	userID, err := p.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return p.UserProfile(ctx, userID)
}

func (p *ProfileAPI) UpdateProfile(ctx context.Context, input model.ProfileUpdate) (*model.ProfileEnvelope, error) {
	userID, err := p.currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var out model.ProfileEnvelope
	err = p.client.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/profiles/%d", userID), body: input}, &out)
	if err != nil {
		return nil, err
	}
	if out.Profile == nil {
		return nil, missingField("profile")
	}
	return &out, nil
}

func (p *ProfileAPI) UserProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	if userID <= 0 {
		return nil, customErrors.ErrInvalidID
	}

	var out model.ProfileEnvelope
	if err := p.client.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/profiles/%d", userID)}, &out); err != nil {
		return nil, err
	}
	if out.Profile == nil {
		return nil, missingField("profile")
	}
	return out.Profile, nil
}

func (p *ProfileAPI) AllProfiles(ctx context.Context, filters model.ProfileFilters) (*model.ProfileList, error) {
	query := url.Values{}
	if filters.CompletionStatus != "" {
		query.Set("completion_status", filters.CompletionStatus)
	}

	var out model.ProfileList
	if err := p.client.do(ctx, request{method: http.MethodGet, path: "/profiles", query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
