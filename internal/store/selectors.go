package store

import "github.com/abisalde/povertyline-client/internal/model"

// Selectors derive view data from a State. Each store owns one set, so the
// cached values of two stores never mix. Returned slices are shared
// between callers and must not be modified.
type Selectors struct {
	resources *Memo[[]model.Resource]
	public    *Memo[[]model.Resource]
	mine      *Memo[[]model.Resource]
	all       *Memo[[]model.Resource]
	pending   *Memo[[]model.Resource]
	adminAll  *Memo[[]model.Resource]
}

func newSelectors() *Selectors {
	view := func(ids func(State) []int64, deps ...slice) *Memo[[]model.Resource] {
		return newMemo(func(s State) []model.Resource {
			return s.Entities.resolve(ids(s))
		}, deps...)
	}
	return &Selectors{
		resources: view(func(s State) []int64 { return s.Resources.activeIDs() }, sliceResources, sliceEntities),
		public:    view(func(s State) []int64 { return s.Resources.PublicIDs }, sliceResources, sliceEntities),
		mine:      view(func(s State) []int64 { return s.Resources.MineIDs }, sliceResources, sliceEntities),
		all:       view(func(s State) []int64 { return s.Resources.AllIDs }, sliceResources, sliceEntities),
		pending:   view(func(s State) []int64 { return s.Admin.PendingIDs }, sliceAdmin, sliceEntities),
		adminAll:  view(func(s State) []int64 { return s.Admin.AllIDs }, sliceAdmin, sliceEntities),
	}
}

// Resources is the list the resources slice last loaded.
func (sel *Selectors) Resources(s State) []model.Resource { return sel.resources.Select(s) }

func (sel *Selectors) PublicResources(s State) []model.Resource { return sel.public.Select(s) }

func (sel *Selectors) MyResources(s State) []model.Resource { return sel.mine.Select(s) }

func (sel *Selectors) AllResources(s State) []model.Resource { return sel.all.Select(s) }

func (sel *Selectors) PendingResources(s State) []model.Resource { return sel.pending.Select(s) }

func (sel *Selectors) AdminResources(s State) []model.Resource { return sel.adminAll.Select(s) }

// SearchResults filters the active list by term.
func (sel *Selectors) SearchResults(s State, term string) []model.Resource {
	return FilterBySearch(sel.Resources(s), term)
}

// SelectResource returns the detail currently on screen, if any.
func SelectResource(s State) (model.Resource, bool) {
	if s.Resources.DetailID == 0 {
		return model.Resource{}, false
	}
	return s.Entities.Get(s.Resources.DetailID)
}

func SelectUser(s State) *model.UserSummary { return s.Auth.User }

func SelectIsAuthenticated(s State) bool { return s.Auth.IsAuthenticated }

func SelectProfile(s State) *model.Profile { return s.Profile.Profile }

func SelectUsers(s State) []model.UserSummary { return s.Admin.Users }

// SelectRole returns the signed-in user's role, or "" without a session.
func SelectRole(s State) model.Role {
	if s.Auth.User == nil {
		return ""
	}
	return s.Auth.User.Role
}
