package store

import (
	"context"

	"github.com/abisalde/povertyline-client/internal/model"
)

func (s *Store) GetCurrentProfile(ctx context.Context) (*model.Profile, error) {
	return run(ctx, s, ProfileGetCurrent, nil, "Failed to get profile data", func(ctx context.Context) (*model.Profile, error) {
		return s.deps.Profiles.CurrentProfile(ctx)
	})
}

// UpdateProfile sends the draft. The cached profile only changes once the
// server answers.
func (s *Store) UpdateProfile(ctx context.Context, draft model.ProfileUpdate) (*model.ProfileEnvelope, error) {
	return run(ctx, s, ProfileUpdate, nil, "Failed to update profile", func(ctx context.Context) (*model.ProfileEnvelope, error) {
		return s.deps.Profiles.UpdateProfile(ctx, draft)
	})
}

func (s *Store) ResetProfile() { s.Dispatch(Action{Type: ProfileReset}) }

func (s *Store) ClearProfile() { s.Dispatch(Action{Type: ProfileClear}) }

func reduceProfile(s *State, a Action) {
	p := &s.Profile

	switch a.Type {
	case ProfileReset:
		p.clearMessages()
		return
	case ProfileClear:
		*p = ProfileState{OpState: OpState{inflight: p.inflight, IsLoading: p.inflight > 0}}
		return
	}

	switch a.Phase {
	case PhasePending:
		p.begin()
	case PhaseRejected:
		p.fail(a.Error)
	case PhaseFulfilled:
		p.settle()
		switch a.Type {
		case ProfileGetCurrent:
			profile, _ := a.Payload.(*model.Profile)
			setProfile(p, profile)
		case ProfileUpdate:
			env, _ := a.Payload.(*model.ProfileEnvelope)
			if env == nil {
				return
			}
			setProfile(p, env.Profile)
			p.Message = "Profile updated successfully"
		}
	}
}

func setProfile(p *ProfileState, profile *model.Profile) {
	if profile == nil {
		return
	}
	p.Profile = profile.Clone()
	p.CompletionPercentage = profile.CompletionPercentage
	p.IsComplete = profile.IsComplete
}
