package localfile

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/domain/model"
)

type profileStore struct {
	s *Store
}

func (p *profileStore) Load(ctx context.Context) (*model.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	var profile *model.Profile
	if err := p.s.readCollection(profileFile, &profile); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "no session profile")
	}
	return profile, nil
}

func (p *profileStore) Save(ctx context.Context, profile *model.Profile) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	return p.s.writeCollection(profileFile, profile)
}

func (p *profileStore) Clear(ctx context.Context) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	return p.s.removeFile(profileFile)
}
