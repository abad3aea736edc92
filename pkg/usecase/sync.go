package usecase

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/utils/errutil"
)

// backgroundSync pushes the remote half of a mutation after the optimistic
// state change has already been applied. On failure the optimistic state is
// kept (rolling it back would discard user intent) and a guarded reload
// reconciles against the backend; if that reload fails too, the discrepancy
// persists until the next successful reload.
func (u *UseCases) backgroundSync(ctx context.Context, unit types.Unit, op string, fn func(ctx context.Context) error) {
	u.dispatchSync(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			errutil.Handle(ctx, err, "background sync failed, keeping local state: "+op)
			if rerr := u.Reload(ctx, unit, false); rerr != nil {
				errutil.Handle(ctx, rerr, "reconcile reload failed after sync error: "+op)
			}
		}
		return nil
	})
}
