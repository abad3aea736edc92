package usecase

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/utils/async"
)

// UseCases wires the gateway, the session profile store and the optimistic
// in-memory unit state behind the operations the views call.
type UseCases struct {
	gateway  interfaces.Gateway
	profiles interfaces.ProfileStore
	grid     *model.GridStructure
	state    *stateCache

	// dispatchSync runs the remote half of a mutation. The default is a
	// fire-and-forget goroutine so views never wait on the backend.
	dispatchSync func(ctx context.Context, fn func(ctx context.Context) error)
}

type Option func(*UseCases)

// WithProfileStore enables the local session (register / unbind / whoami)
func WithProfileStore(store interfaces.ProfileStore) Option {
	return func(uc *UseCases) {
		uc.profiles = store
	}
}

// WithGridStructure overrides the default company grid layout
func WithGridStructure(grid *model.GridStructure) Option {
	return func(uc *UseCases) {
		uc.grid = grid
	}
}

// WithBlockingSync makes remote mutations run inline instead of in the
// background. Used by one-shot CLI commands and tests.
func WithBlockingSync() Option {
	return func(uc *UseCases) {
		uc.dispatchSync = func(ctx context.Context, fn func(ctx context.Context) error) {
			_ = fn(ctx)
		}
	}
}

func New(gateway interfaces.Gateway, opts ...Option) *UseCases {
	uc := &UseCases{
		gateway:      gateway,
		grid:         model.DefaultGridStructure(),
		state:        newStateCache(),
		dispatchSync: async.Dispatch,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
