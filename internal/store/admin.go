package store

import (
	"context"
	"fmt"

	"github.com/abisalde/povertyline-client/internal/model"
)

func (s *Store) FetchAllUsers(ctx context.Context, filters model.UserFilters) (*model.UserList, error) {
	return run(ctx, s, AdminFetchUsers, nil, "Failed to fetch users", func(ctx context.Context) (*model.UserList, error) {
		return s.deps.Admin.Users(ctx, filters)
	})
}

func (s *Store) UpdateUser(ctx context.Context, userID int64, input model.UserUpdate) (*model.UserSummary, error) {
	return run(ctx, s, AdminUpdateUser, userID, "Failed to update user", func(ctx context.Context) (*model.UserSummary, error) {
		env, err := s.deps.Admin.UpdateUser(ctx, userID, input)
		if err != nil {
			return nil, err
		}
		return env.User, nil
	})
}

func (s *Store) ChangeUserStatus(ctx context.Context, userID int64, status model.UserStatus) (*model.UserSummary, error) {
	meta := userStatusMeta{ID: userID, Status: status}
	return run(ctx, s, AdminChangeStatus, meta, "Failed to change user status", func(ctx context.Context) (*model.UserSummary, error) {
		env, err := s.deps.Admin.ChangeUserStatus(ctx, userID, status)
		if err != nil {
			return nil, err
		}
		return env.User, nil
	})
}

func (s *Store) FetchAllResources(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return run(ctx, s, AdminFetchResources, nil, "Failed to fetch resources", func(ctx context.Context) (*model.ResourceList, error) {
		return s.deps.Admin.All(ctx, filters)
	})
}

func (s *Store) FetchPendingResources(ctx context.Context) (*model.ResourceList, error) {
	return run(ctx, s, AdminFetchPending, nil, "Failed to fetch pending resources", func(ctx context.Context) (*model.ResourceList, error) {
		return s.deps.Admin.Pending(ctx)
	})
}

func (s *Store) ApproveRejectResource(ctx context.Context, resourceID int64, status model.ResourceStatus, reason string) (*model.ResourceEnvelope, error) {
	meta := reviewMeta{ID: resourceID, Status: status, Reason: reason}
	input := model.ApprovalInput{Status: status, RejectionReason: reason}
	return run(ctx, s, AdminReview, meta, "Failed to update resource status", func(ctx context.Context) (*model.ResourceEnvelope, error) {
		return s.deps.Admin.Review(ctx, resourceID, input)
	})
}

func (s *Store) ClearAdminMessages() { s.Dispatch(Action{Type: AdminClearMessages}) }

func (s *Store) ResetAdminState() { s.Dispatch(Action{Type: AdminResetState}) }

func reduceAdmin(s *State, a Action) {
	ad := &s.Admin

	switch a.Type {
	case AdminClearMessages:
		ad.clearMessages()
		ad.Success = false
		return
	case AdminResetState:
		*ad = AdminState{OpState: OpState{inflight: ad.inflight, IsLoading: ad.inflight > 0}}
		s.compact()
		return
	}

	switch a.Phase {
	case PhasePending:
		ad.begin()
		ad.Success = false
	case PhaseRejected:
		ad.fail(a.Error)
		ad.Success = false
	case PhaseFulfilled:
		ad.settle()
		applyAdmin(s, a)
	}
}

func applyAdmin(s *State, a Action) {
	ad := &s.Admin

	switch a.Type {
	case AdminFetchUsers:
		if list, ok := a.Payload.(*model.UserList); ok && list != nil {
			ad.Users = append([]model.UserSummary(nil), list.Users...)
		}

	case AdminUpdateUser:
		user, _ := a.Payload.(*model.UserSummary)
		if user == nil {
			return
		}
		ad.Users = patchUser(ad.Users, user.ID, func(*model.UserSummary) model.UserSummary { return *user })
		ad.Message = "User updated successfully"
		ad.Success = true

	case AdminChangeStatus:
		meta, _ := a.Meta.(userStatusMeta)
		status := meta.Status
		if user, ok := a.Payload.(*model.UserSummary); ok && user != nil && user.Status != "" {
			status = user.Status
		}
		ad.Users = patchUser(ad.Users, meta.ID, func(u *model.UserSummary) model.UserSummary {
			next := *u
			next.Status = status
			return next
		})
		ad.Message = fmt.Sprintf("User status changed to %s", status)
		ad.Success = true

	case AdminFetchResources:
		list, _ := a.Payload.(*model.ResourceList)
		if list == nil {
			return
		}
		ad.AllIDs = idsOf(list.Resources)
		ad.AllLoaded = true
		s.upsert(list.Resources...)
		s.compact()

	case AdminFetchPending:
		list, _ := a.Payload.(*model.ResourceList)
		if list == nil {
			return
		}
		ad.PendingIDs = idsOf(list.Resources)
		s.upsert(list.Resources...)
		s.compact()

	case AdminReview:
		env, _ := a.Payload.(*model.ResourceEnvelope)
		meta, _ := a.Meta.(reviewMeta)
		applyReview(s, env, meta)
		ad.PendingIDs = removeID(ad.PendingIDs, meta.ID)
		if meta.Status == model.ResourceStatusApproved {
			ad.Message = "Resource approved successfully"
		} else {
			ad.Message = "Resource rejected successfully"
		}
		ad.Success = true
	}
}

// patchUser returns a copy of users with the entry matching id replaced.
func patchUser(users []model.UserSummary, id int64, patch func(*model.UserSummary) model.UserSummary) []model.UserSummary {
	out := make([]model.UserSummary, len(users))
	copy(out, users)
	for i := range out {
		if out[i].ID == id {
			out[i] = patch(&out[i])
		}
	}
	return out
}
