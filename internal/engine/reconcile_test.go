package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"thoth/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	svc := NewService(db)
	// Fixed evening instant so "today" is stable for the whole test.
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	}
	return svc
}

func newTestOwner(t *testing.T, svc *Service) string {
	t.Helper()
	o, err := svc.OwnerRepo().GetOrCreateByName(context.Background(), "tester")
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return o.ID
}

func addTask(t *testing.T, svc *Service, ownerID, title string, category Category, completed bool, due *time.Time) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := svc.CreateTask(ctx, CreateTaskInput{
		OwnerID:  ownerID,
		Title:    title,
		Category: category,
		DueDate:  due,
	})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	if completed {
		if err := svc.SetTaskCompleted(ctx, id, true); err != nil {
			t.Fatalf("complete task %q: %v", title, err)
		}
	}
	return id
}

func TestReconcileAutomaticSealsDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	dueToday := EndOfDay(svc.now())
	addTask(t, svc, owner, "A", CategoryTask, true, nil)
	addTask(t, svc, owner, "B", CategoryTask, true, nil)
	addTask(t, svc, owner, "C", CategoryTask, true, nil)
	addTask(t, svc, owner, "D", CategoryRitual, false, &dueToday)

	res, err := svc.Reconcile(ctx, owner, SealAutomatic, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !res.Sealed || res.AlreadySealed {
		t.Fatalf("sealed=%v alreadySealed=%v, want true/false", res.Sealed, res.AlreadySealed)
	}
	if res.DateKey != "2026-03-10" {
		t.Fatalf("date key=%q, want 2026-03-10", res.DateKey)
	}
	if len(res.Victories) != 3 || len(res.Retained) != 1 {
		t.Fatalf("victories=%v retained=%v, want 3/1", res.Victories, res.Retained)
	}
	if !res.SuccessDay || res.CurrentStreak != 1 {
		t.Fatalf("success=%v streak=%d, want true/1", res.SuccessDay, res.CurrentStreak)
	}

	entry, err := svc.ChronicleRepo().Get(ctx, owner, "2026-03-10")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if entry == nil {
		t.Fatalf("expected chronicle entry")
	}
	if len(entry.Victories) != 3 || entry.Victories[0] != "A" {
		t.Fatalf("entry victories=%v", entry.Victories)
	}
	if len(entry.Retained) != 1 || entry.Retained[0] != "D" {
		t.Fatalf("entry retained=%v", entry.Retained)
	}
	if entry.Streak != 1 || entry.SealType != "automatic" {
		t.Fatalf("entry streak=%d type=%q", entry.Streak, entry.SealType)
	}

	left, err := svc.TaskRepo().ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("tasks remaining=%d, want 0", len(left))
	}
}

func TestReconcileAutomaticIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	addTask(t, svc, owner, "A", CategoryTask, true, nil)

	if _, err := svc.Reconcile(ctx, owner, SealAutomatic, nil); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	stBefore, err := svc.StatRepo().Get(ctx, owner)
	if err != nil {
		t.Fatalf("stat get: %v", err)
	}

	res, err := svc.Reconcile(ctx, owner, SealAutomatic, nil)
	if err != nil {
		t.Fatalf("second reconcile surfaced error: %v", err)
	}
	if res.Sealed || !res.AlreadySealed {
		t.Fatalf("second call: sealed=%v alreadySealed=%v", res.Sealed, res.AlreadySealed)
	}

	stAfter, err := svc.StatRepo().Get(ctx, owner)
	if err != nil {
		t.Fatalf("stat get: %v", err)
	}
	if stAfter.CurrentStreak != stBefore.CurrentStreak || stAfter.MaxStreak != stBefore.MaxStreak {
		t.Fatalf("streak changed on duplicate trigger: %+v -> %+v", stBefore, stAfter)
	}
	if len(stAfter.History) != len(stBefore.History) {
		t.Fatalf("history grew on duplicate trigger: %v -> %v", stBefore.History, stAfter.History)
	}

	entries, err := svc.ChronicleRepo().ListByOwner(ctx, owner, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want exactly 1", len(entries))
	}
}

func TestReconcileManualThenAutomaticPreservesStreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	addTask(t, svc, owner, "journal", CategoryTask, true, nil)

	manual, err := svc.Reconcile(ctx, owner, SealManual, &Reflection{Intention: "rest"})
	if err != nil {
		t.Fatalf("manual seal: %v", err)
	}
	if manual.CurrentStreak != 1 {
		t.Fatalf("manual streak=%d, want 1", manual.CurrentStreak)
	}

	auto, err := svc.Reconcile(ctx, owner, SealAutomatic, nil)
	if err != nil {
		t.Fatalf("automatic after manual: %v", err)
	}
	if !auto.AlreadySealed {
		t.Fatalf("automatic should observe the manual seal")
	}

	st, err := svc.StatRepo().Get(ctx, owner)
	if err != nil {
		t.Fatalf("stat get: %v", err)
	}
	if st.CurrentStreak != 1 {
		t.Fatalf("sweep zeroed a manually satisfied streak: %d", st.CurrentStreak)
	}

	entries, err := svc.ChronicleRepo().ListByOwner(ctx, owner, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries=%d, want 1", len(entries))
	}
	if entries[0].SealType != "manual" {
		t.Fatalf("entry type=%q, want manual (first sealer wins)", entries[0].SealType)
	}
	if entries[0].ReflectionIntention == nil || *entries[0].ReflectionIntention != "rest" {
		t.Fatalf("reflection lost: %+v", entries[0])
	}
}

func TestReconcileManualTwiceRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	if _, err := svc.Reconcile(ctx, owner, SealManual, nil); err != nil {
		t.Fatalf("first manual seal: %v", err)
	}

	_, err := svc.Reconcile(ctx, owner, SealManual, nil)
	var sealed AlreadySealedError
	if !errors.As(err, &sealed) {
		t.Fatalf("second manual seal err=%v, want AlreadySealedError", err)
	}
	if sealed.DateKey != "2026-03-10" {
		t.Fatalf("error date key=%q", sealed.DateKey)
	}
}

func TestReconcileFailureDayResetsStreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	// Pre-existing streak from earlier days.
	st, err := svc.StatRepo().GetOrCreate(ctx, owner)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	st.CurrentStreak = 3
	st.MaxStreak = 7
	st.History = []int{1, 1, 1}
	if err := svc.StatRepo().Update(ctx, st); err != nil {
		t.Fatalf("stat update: %v", err)
	}

	res, err := svc.Reconcile(ctx, owner, SealAutomatic, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.SuccessDay {
		t.Fatalf("day with no victories counted as success")
	}
	if res.CurrentStreak != 0 {
		t.Fatalf("streak=%d, want 0", res.CurrentStreak)
	}
	if res.MaxStreak != 7 {
		t.Fatalf("max streak=%d, want 7 (never decreases)", res.MaxStreak)
	}

	after, err := svc.StatRepo().Get(ctx, owner)
	if err != nil {
		t.Fatalf("stat get: %v", err)
	}
	if after.History[len(after.History)-1] != 0 {
		t.Fatalf("history=%v, want trailing 0", after.History)
	}
}

func TestReconcileHistoryBounded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	st, err := svc.StatRepo().GetOrCreate(ctx, owner)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	st.History = []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	if err := svc.StatRepo().Update(ctx, st); err != nil {
		t.Fatalf("stat update: %v", err)
	}

	addTask(t, svc, owner, "A", CategoryTask, true, nil)
	if _, err := svc.Reconcile(ctx, owner, SealAutomatic, nil); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	after, err := svc.StatRepo().Get(ctx, owner)
	if err != nil {
		t.Fatalf("stat get: %v", err)
	}
	if len(after.History) != HistoryLimit {
		t.Fatalf("history length=%d, want %d", len(after.History), HistoryLimit)
	}
	if after.History[len(after.History)-1] != 1 {
		t.Fatalf("history=%v, want trailing 1", after.History)
	}
	if after.History[0] != 0 {
		t.Fatalf("oldest entry not evicted: %v", after.History)
	}
}

func TestReconcilePartition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	now := svc.now()
	overdue := EndOfDay(now.AddDate(0, 0, -2))
	future := EndOfDay(now.AddDate(0, 0, 3))

	addTask(t, svc, owner, "done-1", CategoryTask, true, nil)
	addTask(t, svc, owner, "done-2", CategoryTask, true, nil)
	addTask(t, svc, owner, "ritual-1", CategoryRitual, false, nil)
	addTask(t, svc, owner, "overdue-1", CategoryTask, false, &overdue)
	addTask(t, svc, owner, "future-1", CategoryTask, false, &future)
	addTask(t, svc, owner, "undated", CategoryTask, false, nil)

	res, err := svc.Reconcile(ctx, owner, SealAutomatic, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(res.Victories) != 2 {
		t.Fatalf("victories=%v, want 2", res.Victories)
	}
	if len(res.Retained) != 2 {
		t.Fatalf("retained=%v, want ritual + overdue", res.Retained)
	}

	left, err := svc.TaskRepo().ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("remaining=%d, want future-1 and undated", len(left))
	}
	for _, task := range left {
		if task.Title != "future-1" && task.Title != "undated" {
			t.Fatalf("unexpected survivor %q", task.Title)
		}
	}
}

func TestReconcileGraceWindowSealsYesterday(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := newTestOwner(t, svc)

	// Manual seal at 01:00 closes out the previous day's ledger.
	svc.now = func() time.Time {
		return time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	}

	res, err := svc.Reconcile(ctx, owner, SealManual, nil)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.DateKey != "2026-03-10" {
		t.Fatalf("date key=%q, want previous day 2026-03-10", res.DateKey)
	}
}

func TestReconcileInvalidInputs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, "", SealAutomatic, nil); err == nil {
		t.Fatalf("expected error for empty owner")
	}
	if _, err := svc.Reconcile(ctx, "someone", SealType("cron"), nil); err == nil {
		t.Fatalf("expected error for invalid trigger")
	}
}
