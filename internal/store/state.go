package store

import (
	"strings"

	"github.com/abisalde/povertyline-client/internal/model"
)

type slice int

const (
	sliceAuth slice = iota
	sliceProfile
	sliceResources
	sliceAdmin
	sliceEntities
	sliceCount
)

// OpState is the request bookkeeping every slice carries. IsLoading is
// true exactly while at least one of the slice's operations is in flight.
type OpState struct {
	IsLoading bool
	Error     string
	Message   string
	inflight  int
}

func (o *OpState) begin() {
	o.inflight++
	o.IsLoading = true
	o.Error = ""
}

func (o *OpState) settle() {
	if o.inflight > 0 {
		o.inflight--
	}
	o.IsLoading = o.inflight > 0
}

func (o *OpState) fail(message string) {
	o.settle()
	o.Error = message
}

func (o *OpState) clearMessages() {
	o.Error = ""
	o.Message = ""
}

func (o OpState) InFlight() int { return o.inflight }

type AuthState struct {
	User            *model.UserSummary
	IsAuthenticated bool
	OpState
}

type ProfileState struct {
	Profile              *model.Profile
	CompletionPercentage int
	IsComplete           bool
	OpState
}

// View names the resource listing the resources slice last loaded.
type View string

const (
	ViewNone   View = ""
	ViewPublic View = "public"
	ViewMine   View = "mine"
	ViewAll    View = "all"
)

type ResourcesState struct {
	PublicIDs []int64
	MineIDs   []int64
	AllIDs    []int64
	Active    View
	DetailID  int64
	Count     int
	OpState
}

func (r ResourcesState) activeIDs() []int64 {
	switch r.Active {
	case ViewPublic:
		return r.PublicIDs
	case ViewMine:
		return r.MineIDs
	case ViewAll:
		return r.AllIDs
	}
	return nil
}

type AdminState struct {
	Users      []model.UserSummary
	AllIDs     []int64
	PendingIDs []int64
	AllLoaded  bool
	Success    bool
	OpState
}

// State is an immutable snapshot of the whole store. Reducers replace
// slices and maps instead of writing through them, so a snapshot handed
// out earlier never changes underneath its holder.
type State struct {
	Auth      AuthState
	Profile   ProfileState
	Resources ResourcesState
	Admin     AdminState
	Entities  ResourceTable

	storeID uint64
	rev     [sliceCount]uint64
}

func (s *State) touch(slices ...slice) {
	for _, sl := range slices {
		s.rev[sl]++
	}
}

func (s *State) upsert(resources ...model.Resource) {
	if len(resources) == 0 {
		return
	}
	s.Entities = s.Entities.with(resources...)
	s.touch(sliceEntities)
	s.pruneViews()
}

func (s *State) remove(id int64) {
	s.Entities = s.Entities.without(id)
	s.Resources.PublicIDs = removeID(s.Resources.PublicIDs, id)
	s.Resources.MineIDs = removeID(s.Resources.MineIDs, id)
	s.Resources.AllIDs = removeID(s.Resources.AllIDs, id)
	s.Admin.AllIDs = removeID(s.Admin.AllIDs, id)
	s.Admin.PendingIDs = removeID(s.Admin.PendingIDs, id)
	if s.Resources.DetailID == id {
		s.Resources.DetailID = 0
	}
	s.touch(sliceEntities, sliceResources, sliceAdmin)
}

// pruneViews drops ids whose status no longer belongs in a status-scoped
// view: public lists approved resources only, pending lists pending only.
func (s *State) pruneViews() {
	public := s.Entities.filterIDs(s.Resources.PublicIDs, func(r model.Resource) bool {
		return r.Status == model.ResourceStatusApproved
	})
	pending := s.Entities.filterIDs(s.Admin.PendingIDs, func(r model.Resource) bool {
		return r.Status == model.ResourceStatusPending
	})
	if len(public) != len(s.Resources.PublicIDs) {
		s.Resources.PublicIDs = public
		s.touch(sliceResources)
	}
	if len(pending) != len(s.Admin.PendingIDs) {
		s.Admin.PendingIDs = pending
		s.touch(sliceAdmin)
	}
}

// compact evicts table entries no view or detail references.
func (s *State) compact() {
	keep := make(map[int64]struct{})
	for _, ids := range [][]int64{
		s.Resources.PublicIDs, s.Resources.MineIDs, s.Resources.AllIDs,
		s.Admin.AllIDs, s.Admin.PendingIDs,
	} {
		for _, id := range ids {
			keep[id] = struct{}{}
		}
	}
	if s.Resources.DetailID != 0 {
		keep[s.Resources.DetailID] = struct{}{}
	}
	before := s.Entities.Len()
	s.Entities = s.Entities.retain(keep)
	if s.Entities.Len() != before {
		s.touch(sliceEntities)
	}
}

func (s State) revision(deps ...slice) [sliceCount + 1]uint64 {
	var key [sliceCount + 1]uint64
	key[sliceCount] = s.storeID
	for _, d := range deps {
		key[d] = s.rev[d]
	}
	return key
}

func (s State) reduce(a Action) State {
	switch {
	case isAuthAction(a.Type):
		reduceAuth(&s, a)
		s.touch(sliceAuth)
	case isProfileAction(a.Type):
		reduceProfile(&s, a)
		s.touch(sliceProfile)
	case isResourcesAction(a.Type):
		reduceResources(&s, a)
		s.touch(sliceResources)
	case isAdminAction(a.Type):
		reduceAdmin(&s, a)
		s.touch(sliceAdmin)
	}
	return s
}

func isAuthAction(t ActionType) bool      { return strings.HasPrefix(string(t), "auth/") }
func isProfileAction(t ActionType) bool   { return strings.HasPrefix(string(t), "profile/") }
func isResourcesAction(t ActionType) bool { return strings.HasPrefix(string(t), "resources/") }
func isAdminAction(t ActionType) bool     { return strings.HasPrefix(string(t), "admin/") }
