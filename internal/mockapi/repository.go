package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/verification"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrResetToken  = errors.New("invalid or expired reset token")
	resetTokenLife = 24 * time.Hour
)

type userRecord struct {
	model.UserSummary
	PasswordHash string
}

type resetEntry struct {
	userID  int64
	expires time.Time
}

// Repository is the fake API's in-memory database. Every read returns a
// copy.
type Repository struct {
	mu sync.RWMutex

	nextUserID     int64
	nextProfileID  int64
	nextResourceID int64

	users     map[int64]*userRecord
	byEmail   map[string]int64
	profiles  map[int64]*model.Profile
	resources map[int64]*model.Resource
	// resets is keyed by the hashed token.
	resets    map[string]resetEntry
	tokenHash *verification.TokenHasher

	now func() time.Time
}

func NewRepository() *Repository {
	hasher, err := verification.NewRandomTokenHasher()
	if err != nil {
		panic(err)
	}
	return &Repository{
		tokenHash: hasher,
		users:     make(map[int64]*userRecord),
		byEmail:   make(map[string]int64),
		profiles:  make(map[int64]*model.Profile),
		resources: make(map[int64]*model.Resource),
		resets:    make(map[string]resetEntry),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository) timestamp() string {
	return r.now().Format(time.RFC3339)
}

// CreateUser stores a new account together with its empty profile.
func (r *Repository) CreateUser(name, email, passwordHash string, role model.Role) (model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := r.byEmail[email]; ok {
		return model.UserSummary{}, ErrEmailTaken
	}

	r.nextUserID++
	now := r.timestamp()
	rec := &userRecord{
		UserSummary: model.UserSummary{
			ID:        r.nextUserID,
			Name:      strings.TrimSpace(name),
			Email:     email,
			Role:      role,
			Status:    model.UserStatusActive,
			CreatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	r.users[rec.ID] = rec
	r.byEmail[email] = rec.ID

	r.nextProfileID++
	r.profiles[rec.ID] = &model.Profile{ID: r.nextProfileID, UserID: rec.ID, Needs: model.StringList{}, CreatedAt: now, UpdatedAt: now}

	return rec.UserSummary, nil
}

func (r *Repository) userByEmail(email string) (*userRecord, bool) {
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, false
	}
	return r.users[id], true
}

// Credentials returns the user and password hash stored for email.
func (r *Repository) Credentials(email string) (model.UserSummary, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.userByEmail(email)
	if !ok {
		return model.UserSummary{}, "", ErrNotFound
	}
	return rec.UserSummary, rec.PasswordHash, nil
}

func (r *Repository) PasswordHash(userID int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[userID]
	if !ok {
		return "", ErrNotFound
	}
	return rec.PasswordHash, nil
}

func (r *Repository) GetUser(id int64) (model.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return model.UserSummary{}, ErrNotFound
	}
	return rec.UserSummary, nil
}

func (r *Repository) ListUsers(filters model.UserFilters) []model.UserSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.UserSummary, 0, len(r.users))
	for _, rec := range r.users {
		if filters.Role != "" && rec.Role != filters.Role {
			continue
		}
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		out = append(out, rec.UserSummary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) TouchLogin(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.users[id]; ok {
		rec.LastLoginAt = r.timestamp()
	}
}

// UpdateUser applies the non-nil fields of input.
func (r *Repository) UpdateUser(id int64, input model.UserUpdate) (model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return model.UserSummary{}, ErrNotFound
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if other, taken := r.byEmail[email]; taken && other != id {
			return model.UserSummary{}, ErrEmailTaken
		}
		delete(r.byEmail, rec.Email)
		rec.Email = email
		r.byEmail[email] = id
	}
	if input.Name != nil {
		rec.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		rec.Role = *input.Role
	}
	if input.Status != nil {
		rec.Status = *input.Status
	}
	return rec.UserSummary, nil
}

func (r *Repository) SetPassword(id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	rec.PasswordHash = hash
	return nil
}

// IssueResetToken returns a fresh reset token for email. ok is false when
// no such account exists.
func (r *Repository) IssueResetToken(email string) (token string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, found := r.userByEmail(email)
	if !found {
		return "", false
	}
	token = uuid.NewString()
	r.resets[r.tokenHash.HashToken(token)] = resetEntry{userID: rec.ID, expires: r.now().Add(resetTokenLife)}
	return token, true
}

// ConsumeResetToken redeems token once.
func (r *Repository) ConsumeResetToken(token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.tokenHash.HashToken(token)
	entry, ok := r.resets[key]
	if !ok {
		return 0, ErrResetToken
	}
	delete(r.resets, key)
	if r.now().After(entry.expires) {
		return 0, ErrResetToken
	}
	return entry.userID, nil
}

func (r *Repository) GetProfile(userID int64) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *Repository) UpdateProfile(userID int64, input model.ProfileUpdate) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Phone, input.Phone)
	set(&p.Bio, input.Bio)
	set(&p.Address, input.Address)
	set(&p.City, input.City)
	set(&p.State, input.State)
	set(&p.ZipCode, input.ZipCode)
	if input.Needs != nil {
		p.Needs = model.NewStringList(input.Needs...)
	}
	p.CompletionPercentage, p.IsComplete = Completion(p)
	p.UpdatedAt = r.timestamp()
	return p.Clone(), nil
}

func (r *Repository) ListProfiles(completionStatus string) []model.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		switch completionStatus {
		case "complete":
			if !p.IsComplete {
				continue
			}
		case "incomplete":
			if p.IsComplete {
				continue
			}
		}
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (r *Repository) CreateResource(res model.Resource) model.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextResourceID++
	now := r.timestamp()
	res.ID = r.nextResourceID
	res.CreatedAt, res.UpdatedAt = now, now
	if res.Requirements == nil {
		res.Requirements = model.StringList{}
	}
	stored := res.Clone()
	r.resources[res.ID] = &stored
	return res.Clone()
}

func (r *Repository) GetResource(id int64) (model.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resources[id]
	if !ok {
		return model.Resource{}, ErrNotFound
	}
	return res.Clone(), nil
}

func (r *Repository) ListResources(keep func(model.Resource) bool) []model.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if keep(*res) {
			out = append(out, res.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateResource runs mutate on the stored resource under the write lock.
func (r *Repository) UpdateResource(id int64, mutate func(*model.Resource)) (model.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.resources[id]
	if !ok {
		return model.Resource{}, ErrNotFound
	}
	mutate(res)
	res.UpdatedAt = r.timestamp()
	return res.Clone(), nil
}

func (r *Repository) DeleteResource(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[id]; !ok {
		return ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

// Completion scores a profile: required contact fields carry 70% and the
// optional bio and needs 30%. A profile at 80% or more is complete.
func Completion(p *model.Profile) (int, bool) {
	required := []string{p.Phone, p.Address, p.City, p.State, p.ZipCode}
	filledRequired := 0
	for _, v := range required {
		if strings.TrimSpace(v) != "" {
			filledRequired++
		}
	}
	filledOptional := 0
	if strings.TrimSpace(p.Bio) != "" {
		filledOptional++
	}
	if len(p.Needs) > 0 {
		filledOptional++
	}

	score := filledRequired*70/len(required) + filledOptional*30/2
	return score, score >= 80
}
