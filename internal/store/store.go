package store

import (
	"context"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	app_logger "github.com/abisalde/povertyline-client/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error)
	Login(ctx context.Context, input model.LoginInput) (*model.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.UserSummary, error)
	ChangePassword(ctx context.Context, input model.ChangePasswordInput) (*model.MessageResponse, error)
	RequestPasswordReset(ctx context.Context, email string) (*model.MessageResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error)
}

type ProfileService interface {
	CurrentProfile(ctx context.Context) (*model.Profile, error)
	UpdateProfile(ctx context.Context, input model.ProfileUpdate) (*model.ProfileEnvelope, error)
}

type ResourceService interface {
	List(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error)
	Mine(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error)
	All(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error)
	Get(ctx context.Context, id int64) (*model.ResourceEnvelope, error)
	Create(ctx context.Context, input model.ResourceInput) (*model.ResourceEnvelope, error)
	Update(ctx context.Context, id int64, input model.ResourceInput) (*model.ResourceEnvelope, error)
	Delete(ctx context.Context, id int64) (*model.MessageResponse, error)
	Review(ctx context.Context, id int64, input model.ApprovalInput) (*model.ResourceEnvelope, error)
}

type AdminService interface {
	Users(ctx context.Context, filters model.UserFilters) (*model.UserList, error)
	UpdateUser(ctx context.Context, userID int64, input model.UserUpdate) (*model.UserEnvelope, error)
	ChangeUserStatus(ctx context.Context, userID int64, status model.UserStatus) (*model.UserEnvelope, error)
	All(ctx context.Context, filters model.ResourceFilters) (*model.ResourceList, error)
	Pending(ctx context.Context) (*model.ResourceList, error)
	Review(ctx context.Context, id int64, input model.ApprovalInput) (*model.ResourceEnvelope, error)
}

// SessionLoader reads the persisted session the store hydrates from.
type SessionLoader interface {
	Load(ctx context.Context) (string, *model.UserSummary, error)
}

// Navigator moves the view layer to another route.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type Dependencies struct {
	Auth      AuthService
	Profiles  ProfileService
	Resources ResourceService
	Admin     AdminService
	Session   SessionLoader
	Navigator Navigator
}

type Listener func(State)

var storeIDs atomic.Uint64

// Store is the single container for client state. Build one per process
// with New and pass it to whatever renders.
type Store struct {
	deps Dependencies

	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	queue     []State
	draining  bool

	selectors *Selectors
}

func New(ctx context.Context, deps Dependencies) *Store {
	s := &Store{
		deps:      deps,
		listeners: make(map[int]Listener),
		state:     State{storeID: storeIDs.Add(1)},
	}
	s.selectors = newSelectors()

	if deps.Session != nil {
		_, user, err := deps.Session.Load(ctx)
		if err != nil {
			log.Printf("⚠️ Could not hydrate session: %v", err)
		}
		s.state.Auth.User = user
		s.state.Auth.IsAuthenticated = user != nil
	}
	return s
}

// State returns the current snapshot. Treat it as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Select() *Selectors { return s.selectors }

// Subscribe registers fn to receive every snapshot, in dispatch order.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Dispatch applies a through the reducers and notifies subscribers. A
// listener may dispatch; the nested snapshot is delivered after the current
// one.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = s.state.reduce(a)
	s.queue = append(s.queue, s.state)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		batch := s.queue
		s.queue = nil
		listeners := s.listenerList()
		s.mu.Unlock()

		for _, snapshot := range batch {
			for _, l := range listeners {
				l(snapshot)
			}
		}
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

func (s *Store) listenerList() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = s.listeners[id]
	}
	return out
}

// HandleUnauthorized is the transport's 401 hook: it ends the session the
// same way an explicit logout does and sends the view to /login.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	log.Println("🔒 Session rejected by API, logging out")
	s.Logout(ctx)
	if s.deps.Navigator != nil {
		s.deps.Navigator.Navigate("/login")
	}
}

func run[T any](ctx context.Context, s *Store, typ ActionType, meta any, fallback string, call func(context.Context) (T, error)) (T, error) {
	s.Dispatch(Action{Type: typ, Phase: PhasePending, Meta: meta})

	out, err := call(ctx)
	if err != nil {
		message := customErrors.UserMessage(err, fallback)
		app_logger.LogError(ctx, string(typ), err)
		s.Dispatch(Action{Type: typ, Phase: PhaseRejected, Error: message, Meta: meta})

		var zero T
		return zero, &Rejection{Type: typ, Message: message, Err: err}
	}

	s.Dispatch(Action{Type: typ, Phase: PhaseFulfilled, Payload: out, Meta: meta})
	return out, nil
}
