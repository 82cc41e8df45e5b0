package engine

import (
	"context"
	"log/slog"
)

type SweepResult struct {
	Owners        int
	Sealed        int
	AlreadySealed int
	TasksCreated  int
	Failures      int
}

// Sweep runs the nightly close-out for every owner: an automatic
// reconciliation followed by ritual regeneration. One owner's failure is
// logged and skipped; it never blocks the rest. Cancelling ctx stops the
// sweep between owners, never mid-owner.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	owners, err := s.owners.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Owners: len(owners)}
	for _, o := range owners {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res, err := s.Reconcile(ctx, o.ID, SealAutomatic, nil)
		if err != nil {
			slog.Error("sweep: reconcile failed", "owner", o.Name, "err", err)
			result.Failures++
			continue
		}
		switch {
		case res.Sealed:
			result.Sealed++
		case res.AlreadySealed:
			result.AlreadySealed++
		}

		regen, err := s.Regenerate(ctx, o.ID)
		if err != nil {
			slog.Error("sweep: regenerate failed", "owner", o.Name, "err", err)
			result.Failures++
			continue
		}
		result.TasksCreated += regen.Created
		for _, skipped := range regen.Skipped {
			if skipped.Reason == "missing title" {
				slog.Warn("sweep: skipped malformed ritual", "owner", o.Name, "ritual", skipped.RitualID)
			}
		}
	}

	return result, nil
}
