package store

import (
	"context"
	"strings"

	"github.com/abisalde/povertyline-client/internal/model"
)

func (s *Store) GetResources(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return run(ctx, s, ResourcesGetPublic, nil, "Failed to fetch resources", func(ctx context.Context) (*model.ResourceList, error) {
		return s.deps.Resources.List(ctx, filters)
	})
}

func (s *Store) GetMyResources(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return run(ctx, s, ResourcesGetMine, nil, "Failed to fetch your resources", func(ctx context.Context) (*model.ResourceList, error) {
		return s.deps.Resources.Mine(ctx, filters)
	})
}

func (s *Store) GetAllResources(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error) {
	return run(ctx, s, ResourcesGetAll, nil, "Failed to fetch all resources", func(ctx context.Context) (*model.ResourceList, error) {
		return s.deps.Resources.All(ctx, filters)
	})
}

func (s *Store) GetResource(ctx context.Context, id int64) (*model.Resource, error) {
	return run(ctx, s, ResourcesGetOne, id, "Failed to fetch resource", func(ctx context.Context) (*model.Resource, error) {
		env, err := s.deps.Resources.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return env.Resource, nil
	})
}

func (s *Store) CreateResource(ctx context.Context, input model.ResourceInput) (*model.Resource, error) {
	return run(ctx, s, ResourcesCreate, nil, "Failed to create resource", func(ctx context.Context) (*model.Resource, error) {
		env, err := s.deps.Resources.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		return env.Resource, nil
	})
}

func (s *Store) UpdateResource(ctx context.Context, id int64, input model.ResourceInput) (*model.Resource, error) {
	return run(ctx, s, ResourcesUpdate, id, "Failed to update resource", func(ctx context.Context) (*model.Resource, error) {
		env, err := s.deps.Resources.Update(ctx, id, input)
		if err != nil {
			return nil, err
		}
		return env.Resource, nil
	})
}

func (s *Store) DeleteResource(ctx context.Context, id int64) error {
	_, err := run(ctx, s, ResourcesDelete, id, "Failed to delete resource", func(ctx context.Context) (*model.MessageResponse, error) {
		return s.deps.Resources.Delete(ctx, id)
	})
	return err
}

// ApproveOrRejectResource forwards the review as given. A missing rejection
// reason is reported by the server, not checked here.
func (s *Store) ApproveOrRejectResource(ctx context.Context, id int64, input model.ApprovalInput) (*model.ResourceEnvelope, error) {
	meta := reviewMeta{ID: id, Status: input.Status, Reason: input.RejectionReason}
	return run(ctx, s, ResourcesReview, meta, "Failed to update resource approval", func(ctx context.Context) (*model.ResourceEnvelope, error) {
		return s.deps.Resources.Review(ctx, id, input)
	})
}

func (s *Store) ResetResources()       { s.Dispatch(Action{Type: ResourcesReset}) }
func (s *Store) ClearResourceData()    { s.Dispatch(Action{Type: ResourcesClearData}) }
func (s *Store) ClearResourceMessage() { s.Dispatch(Action{Type: ResourcesClearMessage}) }

func reduceResources(s *State, a Action) {
	r := &s.Resources

	switch a.Type {
	case ResourcesReset:
		r.clearMessages()
		return
	case ResourcesClearMessage:
		r.Message = ""
		return
	case ResourcesClearData:
		r.PublicIDs, r.MineIDs, r.AllIDs = nil, nil, nil
		r.Active = ViewNone
		r.DetailID = 0
		r.Count = 0
		s.compact()
		return
	}

	switch a.Phase {
	case PhasePending:
		r.begin()
	case PhaseRejected:
		r.fail(a.Error)
	case PhaseFulfilled:
		r.settle()
		applyResources(s, a)
	}
}

func applyResources(s *State, a Action) {
	r := &s.Resources

	switch a.Type {
	case ResourcesGetPublic, ResourcesGetMine, ResourcesGetAll:
		list, _ := a.Payload.(*model.ResourceList)
		if list == nil {
			return
		}
		ids := idsOf(list.Resources)
		switch a.Type {
		case ResourcesGetPublic:
			r.PublicIDs, r.Active = ids, ViewPublic
		case ResourcesGetMine:
			r.MineIDs, r.Active = ids, ViewMine
		case ResourcesGetAll:
			r.AllIDs, r.Active = ids, ViewAll
		}
		r.Count = list.Count
		s.upsert(list.Resources...)
		s.compact()

	case ResourcesGetOne:
		res, _ := a.Payload.(*model.Resource)
		if res == nil {
			return
		}
		r.DetailID = res.ID
		s.upsert(*res)

	case ResourcesCreate:
		res, _ := a.Payload.(*model.Resource)
		if res == nil {
			return
		}
		s.upsert(*res)
		r.MineIDs = appendID(r.MineIDs, res.ID)
		if r.Active == ViewAll {
			r.AllIDs = appendID(r.AllIDs, res.ID)
		}
		if s.Admin.AllLoaded {
			s.Admin.AllIDs = appendID(s.Admin.AllIDs, res.ID)
			s.touch(sliceAdmin)
		}
		r.Count++
		r.Message = "Resource created successfully"

	case ResourcesUpdate:
		res, _ := a.Payload.(*model.Resource)
		if res == nil {
			return
		}
		updateKnown(s, *res)
		r.Message = "Resource updated successfully"

	case ResourcesDelete:
		id, _ := a.Meta.(int64)
		s.remove(id)
		if r.Count > 0 {
			r.Count--
		}
		r.Message = "Resource deleted successfully"

	case ResourcesReview:
		env, _ := a.Payload.(*model.ResourceEnvelope)
		meta, _ := a.Meta.(reviewMeta)
		applyReview(s, env, meta)
		if env != nil {
			r.Message = env.Message
		}
	}
}

// updateKnown writes res into the table when some view or the detail holds
// it. Unknown ids are ignored.
func updateKnown(s *State, res model.Resource) {
	if !isReferenced(s, res.ID) {
		return
	}
	s.upsert(res)
}

func isReferenced(s *State, id int64) bool {
	if s.Resources.DetailID == id {
		return true
	}
	for _, ids := range [][]int64{
		s.Resources.PublicIDs, s.Resources.MineIDs, s.Resources.AllIDs,
		s.Admin.AllIDs, s.Admin.PendingIDs,
	} {
		if containsID(ids, id) {
			return true
		}
	}
	return false
}

// applyReview patches the reviewed resource with the server copy, or with
// the requested status and reason when the response carries none.
func applyReview(s *State, env *model.ResourceEnvelope, meta reviewMeta) {
	if env != nil && env.Resource != nil {
		updateKnown(s, *env.Resource)
		return
	}
	current, ok := s.Entities.Get(meta.ID)
	if !ok {
		return
	}
	current.Status = meta.Status
	if meta.Status == model.ResourceStatusRejected {
		current.RejectionReason = meta.Reason
	} else {
		current.RejectionReason = ""
	}
	updateKnown(s, current)
}

// FilterBySearch keeps the resources whose title, description, location or
// city contains term, ignoring case. An empty term keeps everything.
func FilterBySearch(resources []model.Resource, term string) []model.Resource {
	if strings.TrimSpace(term) == "" {
		return resources
	}
	out := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}
