package engine

import (
	"testing"

	"thoth/internal/storage"
)

func TestApplyDayOutcomeSuccessAndReset(t *testing.T) {
	st := &storage.Stat{OwnerID: "o", CurrentStreak: 3, MaxStreak: 5}

	applyDayOutcome(st, true, "2026-03-10")
	if st.CurrentStreak != 4 || st.MaxStreak != 5 {
		t.Fatalf("after success: streak=%d max=%d, want 4/5", st.CurrentStreak, st.MaxStreak)
	}
	if len(st.History) != 1 || st.History[0] != 1 {
		t.Fatalf("history=%v, want [1]", st.History)
	}
	if st.LastSealedDate != "2026-03-10" {
		t.Fatalf("last sealed=%q", st.LastSealedDate)
	}

	applyDayOutcome(st, false, "2026-03-11")
	if st.CurrentStreak != 0 {
		t.Fatalf("after failure: streak=%d, want 0", st.CurrentStreak)
	}
	if st.MaxStreak != 5 {
		t.Fatalf("max streak decreased to %d", st.MaxStreak)
	}
	if len(st.History) != 2 || st.History[1] != 0 {
		t.Fatalf("history=%v, want [1 0]", st.History)
	}
}

func TestApplyDayOutcomeRaisesMax(t *testing.T) {
	st := &storage.Stat{OwnerID: "o", CurrentStreak: 5, MaxStreak: 5}
	applyDayOutcome(st, true, "2026-03-10")
	if st.CurrentStreak != 6 || st.MaxStreak != 6 {
		t.Fatalf("streak=%d max=%d, want 6/6", st.CurrentStreak, st.MaxStreak)
	}
}

func TestPushHistoryBound(t *testing.T) {
	var h []int
	for i := 0; i < 25; i++ {
		h = pushHistory(h, i%2)
	}
	if len(h) != HistoryLimit {
		t.Fatalf("history length=%d, want %d", len(h), HistoryLimit)
	}
	// Newest entry survives, oldest were evicted.
	if h[len(h)-1] != 24%2 {
		t.Fatalf("newest entry=%d, want %d", h[len(h)-1], 24%2)
	}
}
