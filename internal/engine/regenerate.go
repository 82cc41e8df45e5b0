package engine

import (
	"context"
	"fmt"

	"thoth/internal/storage"
)

type RegenerateResult struct {
	Created int
	Skipped []SkippedTemplate
}

// SkippedTemplate reports one ritual template that produced no task this
// run, with the reason.
type SkippedTemplate struct {
	RitualID int64
	Title    string
	Reason   string
}

// Regenerate stamps out one fresh task per ritual template the owner has,
// due at the end of the current calendar day. A template whose task for
// today already exists is skipped, so a double-fired trigger cannot
// duplicate rituals. A malformed template is skipped and reported without
// failing the rest.
func (s *Service) Regenerate(ctx context.Context, ownerID string) (*RegenerateResult, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	templates, err := s.rituals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	due := EndOfDay(now)
	dayStart, dayEnd, err := DayBounds(now.Format(DateKeyFormat), now.Location())
	if err != nil {
		return nil, err
	}

	result := &RegenerateResult{}
	for _, tpl := range templates {
		if _, err := normalizeTitle(tpl.Title); err != nil {
			result.Skipped = append(result.Skipped, SkippedTemplate{
				RitualID: tpl.ID,
				Title:    tpl.Title,
				Reason:   "missing title",
			})
			continue
		}

		exists, err := s.tasks.HasSpawnDueBetween(ctx, tpl.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = append(result.Skipped, SkippedTemplate{
				RitualID: tpl.ID,
				Title:    tpl.Title,
				Reason:   "already generated today",
			})
			continue
		}

		imp := Importance(tpl.Importance)
		if !imp.IsValid() {
			imp = DefaultImportance
		}
		mins := tpl.EstimatedMinutes
		if mins <= 0 {
			mins = DefaultEstimatedMinutes
		}

		subtasks := make([]storage.Subtask, 0, len(tpl.Subtasks))
		for _, sub := range tpl.Subtasks {
			subtasks = append(subtasks, storage.Subtask{Text: sub.Text})
		}

		ritualID := tpl.ID
		dueDate := due
		_, err = s.tasks.Insert(ctx, storage.TaskInsert{
			OwnerID:          ownerID,
			Title:            tpl.Title,
			Category:         string(CategoryRitual),
			Importance:       string(imp),
			EstimatedMinutes: mins,
			Details:          tpl.Details,
			Subtasks:         subtasks,
			DueDate:          &dueDate,
			OriginRitualID:   &ritualID,
		})
		if err != nil {
			return nil, fmt.Errorf("regenerate ritual %d: %w", tpl.ID, err)
		}
		result.Created++
	}

	return result, nil
}
