package engine

import (
	"context"
	"fmt"
	"time"

	"thoth/internal/storage"
)

type CreateTaskInput struct {
	OwnerID          string
	Title            string
	Category         Category
	Importance       Importance
	EstimatedMinutes int
	Details          *string
	Subtasks         []storage.Subtask
	DueDate          *time.Time
}

type CreateRitualInput struct {
	OwnerID          string
	Title            string
	Importance       Importance
	EstimatedMinutes int
	Details          *string
	Subtasks         []storage.Subtask
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}

	cat := in.Category
	if !cat.IsValid() {
		cat = DefaultCategory
	}
	imp := in.Importance
	if !imp.IsValid() {
		imp = DefaultImportance
	}
	mins := in.EstimatedMinutes
	if mins <= 0 {
		mins = DefaultEstimatedMinutes
	}

	return s.tasks.Insert(ctx, storage.TaskInsert{
		OwnerID:          in.OwnerID,
		Title:            title,
		Category:         string(cat),
		Importance:       string(imp),
		EstimatedMinutes: mins,
		Details:          in.Details,
		Subtasks:         in.Subtasks,
		DueDate:          in.DueDate,
	})
}

func (s *Service) CreateRitual(ctx context.Context, in CreateRitualInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}

	imp := in.Importance
	if !imp.IsValid() {
		imp = DefaultImportance
	}
	mins := in.EstimatedMinutes
	if mins <= 0 {
		mins = DefaultEstimatedMinutes
	}

	return s.rituals.Insert(ctx, storage.RitualInsert{
		OwnerID:          in.OwnerID,
		Title:            title,
		Importance:       string(imp),
		EstimatedMinutes: mins,
		Details:          in.Details,
		Subtasks:         in.Subtasks,
	})
}

// SetTaskCompleted toggles a task's completion flag.
func (s *Service) SetTaskCompleted(ctx context.Context, id int64, completed bool) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %d not found", id)
	}
	return s.tasks.SetCompleted(ctx, id, completed)
}
