package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// Profile returns the currently bound session profile
func (u *UseCases) Profile(ctx context.Context) (*model.Profile, error) {
	if u.profiles == nil {
		return nil, ErrNoProfile
	}
	profile, err := u.profiles.Load(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNoProfile, "not bound")
		}
		return nil, goerr.Wrap(err, "failed to load session profile")
	}
	return profile, nil
}

// Register binds the session to a position slot and publishes the entry on
// the shared roster. Registering into a slot held by somebody else is
// refused before any write; re-binding the same person (same student id)
// replaces the prior entry, which is how a member corrects their own data.
func (u *UseCases) Register(ctx context.Context, profile *model.Profile) error {
	if err := profile.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile")
	}

	snap, err := u.Snapshot(ctx, profile.Unit)
	if err != nil {
		return err
	}
	for _, e := range snap.Roster {
		if e.PositionKey == profile.PositionKey && e.StudentID != profile.StudentID {
			return goerr.Wrap(ErrSlotOccupied, "slot is bound to another member",
				goerr.V("unit", profile.Unit),
				goerr.V("positionKey", profile.PositionKey),
				goerr.V("occupant", e.Name))
		}
	}

	if u.profiles != nil {
		if err := u.profiles.Save(ctx, profile); err != nil {
			return goerr.Wrap(err, "failed to persist session profile")
		}
	}

	entry := profile.RosterEntry()
	st := u.state.get(profile.Unit)
	st.mutate(func(s *unitState) {
		s.upsertRosterLocked(entry)
	})

	u.backgroundSync(ctx, profile.Unit, "update_roster", func(ctx context.Context) error {
		return u.gateway.Roster().Upsert(ctx, entry)
	})

	return nil
}

// RemoveRoster vacates a position slot on the shared roster
func (u *UseCases) RemoveRoster(ctx context.Context, unit types.Unit, positionKey string) error {
	if _, err := u.Snapshot(ctx, unit); err != nil {
		return err
	}

	st := u.state.get(unit)
	st.mutate(func(s *unitState) {
		s.removeRosterLocked(positionKey)
	})

	u.backgroundSync(ctx, unit, "remove_roster", func(ctx context.Context) error {
		return u.gateway.Roster().Remove(ctx, unit, positionKey)
	})

	return nil
}

// Unbind removes the session's roster entry and clears the local profile
func (u *UseCases) Unbind(ctx context.Context) error {
	profile, err := u.Profile(ctx)
	if err != nil {
		return err
	}

	if err := u.RemoveRoster(ctx, profile.Unit, profile.PositionKey); err != nil {
		return err
	}

	if err := u.profiles.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear session profile")
	}
	return nil
}

// ClearProfile drops the local binding without touching the shared roster
func (u *UseCases) ClearProfile(ctx context.Context) error {
	if u.profiles == nil {
		return ErrNoProfile
	}
	if err := u.profiles.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear session profile")
	}
	return nil
}
