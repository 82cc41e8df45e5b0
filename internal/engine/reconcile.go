package engine

import (
	"context"
	"database/sql"
	"fmt"

	"thoth/internal/storage"
)

type SealType string

const (
	SealAutomatic SealType = "automatic"
	SealManual    SealType = "manual"
)

func (t SealType) IsValid() bool {
	switch t {
	case SealAutomatic, SealManual:
		return true
	default:
		return false
	}
}

// Reflection is the optional free-text bundle a user attaches to a manual
// seal. The automatic sweep never supplies one.
type Reflection struct {
	Victories  string
	ShadowWork string
	Intention  string
}

type ReconcileResult struct {
	DateKey       string
	Sealed        bool
	AlreadySealed bool
	Victories     []string
	Retained      []string
	SuccessDay    bool
	CurrentStreak int
	MaxStreak     int
}

// Reconcile closes out one owner's day: it partitions live tasks, seals a
// chronicle entry for the logical date, folds the outcome into the streak,
// and deletes the archived tasks. All of it commits as one transaction or
// not at all.
//
// The chronicle entry's conditional insert is the idempotency token. If the
// date is already sealed, the automatic path no-ops (a manual seal earlier
// in the night must not be undone by the sweep) and the manual path returns
// AlreadySealedError.
//
// Success criteria differ by trigger on purpose: a manual seal always counts
// the day as a success, the automatic sweep requires at least one completed
// task.
func (s *Service) Reconcile(ctx context.Context, ownerID string, trigger SealType, reflection *Reflection) (*ReconcileResult, error) {
	if !trigger.IsValid() {
		return nil, fmt.Errorf("invalid seal trigger: %q", trigger)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	dateKey := LogicalDate(s.now(), s.grace)
	result := &ReconcileResult{DateKey: dateKey}

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stats := storage.NewStatRepo(tx)
		tasks := storage.NewTaskRepo(tx)
		chronicle := storage.NewChronicleRepo(tx)

		st, err := stats.GetOrCreate(ctx, ownerID)
		if err != nil {
			return err
		}

		live, err := tasks.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		victories, retained := partitionTasks(live, dateKey)

		success := trigger == SealManual || len(victories) > 0
		applyDayOutcome(st, success, dateKey)

		insert := storage.ChronicleInsert{
			OwnerID:   ownerID,
			DateKey:   dateKey,
			Victories: taskTitles(victories),
			Retained:  taskTitles(retained),
			Streak:    st.CurrentStreak,
			SealType:  string(trigger),
		}
		if trigger == SealManual && reflection != nil {
			if reflection.Victories != "" {
				v := reflection.Victories
				insert.ReflectionVictories = &v
			}
			if reflection.ShadowWork != "" {
				v := reflection.ShadowWork
				insert.ReflectionShadow = &v
			}
			if reflection.Intention != "" {
				v := reflection.Intention
				insert.ReflectionIntention = &v
			}
		}

		created, err := chronicle.InsertIfAbsent(ctx, insert)
		if err != nil {
			return err
		}
		if !created {
			// Already sealed by the competing path. Nothing else may
			// change: no stat write, no task deletion.
			if trigger == SealManual {
				return AlreadySealedError{DateKey: dateKey}
			}
			result.AlreadySealed = true
			return nil
		}

		if err := stats.Update(ctx, st); err != nil {
			return err
		}
		if err := tasks.DeleteByIDs(ctx, taskIDs(append(victories, retained...))); err != nil {
			return err
		}

		result.Sealed = true
		result.Victories = taskTitles(victories)
		result.Retained = taskTitles(retained)
		result.SuccessDay = success
		result.CurrentStreak = st.CurrentStreak
		result.MaxStreak = st.MaxStreak
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// partitionTasks splits live tasks into the day's victories (completed,
// archived then deleted) and retained carryovers (incomplete rituals or
// tasks due on/before the boundary). Incomplete tasks due in the future are
// left untouched.
func partitionTasks(all []storage.Task, dateKey string) (victories, retained []storage.Task) {
	for _, t := range all {
		if t.Completed {
			victories = append(victories, t)
			continue
		}
		if Category(t.Category) == CategoryRitual {
			retained = append(retained, t)
			continue
		}
		// ISO date keys compare correctly as strings.
		if t.DueDate != nil && t.DueDate.Format(DateKeyFormat) <= dateKey {
			retained = append(retained, t)
		}
	}
	return victories, retained
}

func taskTitles(tasks []storage.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func taskIDs(tasks []storage.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
