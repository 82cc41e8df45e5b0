package engine

import (
	"context"
	"testing"
)

func TestSweepProcessesAllOwners(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice, err := svc.OwnerRepo().GetOrCreateByName(ctx, "alice")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := svc.OwnerRepo().GetOrCreateByName(ctx, "bob")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	addTask(t, svc, alice.ID, "ship it", CategoryTask, true, nil)
	if _, err := svc.CreateRitual(ctx, CreateRitualInput{OwnerID: bob.ID, Title: "Stretch"}); err != nil {
		t.Fatalf("create ritual: %v", err)
	}

	res, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if res.Owners != 2 || res.Sealed != 2 || res.Failures != 0 {
		t.Fatalf("result=%+v, want 2 owners sealed", res)
	}
	if res.TasksCreated != 1 {
		t.Fatalf("tasks created=%d, want 1 (bob's ritual)", res.TasksCreated)
	}

	aliceStat, err := svc.StatRepo().Get(ctx, alice.ID)
	if err != nil {
		t.Fatalf("alice stat: %v", err)
	}
	if aliceStat.CurrentStreak != 1 {
		t.Fatalf("alice streak=%d, want 1", aliceStat.CurrentStreak)
	}

	bobStat, err := svc.StatRepo().Get(ctx, bob.ID)
	if err != nil {
		t.Fatalf("bob stat: %v", err)
	}
	if bobStat.CurrentStreak != 0 {
		t.Fatalf("bob streak=%d, want 0 (no victories)", bobStat.CurrentStreak)
	}
}

func TestSweepSecondRunIsNoOp(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	o, err := svc.OwnerRepo().GetOrCreateByName(ctx, "alice")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	addTask(t, svc, o.ID, "ship it", CategoryTask, true, nil)

	if _, err := svc.Sweep(ctx); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	res, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if res.Sealed != 0 || res.AlreadySealed != 1 {
		t.Fatalf("second sweep result=%+v, want already-sealed no-op", res)
	}
}

func TestSweepHonorsCancellation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	o, err := svc.OwnerRepo().GetOrCreateByName(ctx, "alice")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	if _, err := svc.Sweep(cancelled); err == nil {
		t.Fatalf("expected context error from cancelled sweep")
	}

	// No owner was left partially reconciled: either fully sealed or untouched.
	entries, err := svc.ChronicleRepo().ListByOwner(ctx, o.ID, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("cancelled sweep sealed a day: %v", entries)
	}
}
