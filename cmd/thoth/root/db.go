package root

import (
	"context"

	"thoth/internal/config"
	"thoth/internal/engine"
	"thoth/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := engine.NewService(db)
	svc.SetGraceWindow(cfg.GraceWindow)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cfg, cleanup, nil
}

// resolveOwner picks the owner from the --owner flag or config default,
// creating it on first use.
func resolveOwner(ctx context.Context, svc *engine.Service, cfg *config.Config, flagOwner string) (*storage.Owner, error) {
	name := flagOwner
	if name == "" {
		name = cfg.Owner
	}
	return svc.OwnerRepo().GetOrCreateByName(ctx, name)
}
