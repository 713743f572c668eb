package cli

import (
	"context"

	"github.com/mcgareyconsulting/milehigh-sub001/internal/board"
	"github.com/mcgareyconsulting/milehigh-sub001/internal/store"
)

// withController opens the store, builds a controller over a fresh
// snapshot, runs fn and closes the store afterwards.
func (a *app) withController(ctx context.Context, fn func(*board.Controller) error) error {
	return a.withStore(ctx, func(s *store.Store) error {
		ctrl := board.NewController(s)

		err := ctrl.Refresh(ctx)
		if err != nil {
			return err
		}

		return fn(ctrl)
	})
}

func (a *app) withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := store.Open(ctx, a.cfg.StoreDirAbs)
	if err != nil {
		return err
	}

	defer func() { _ = s.Close() }()

	return fn(s)
}
