package engine

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"thoth/internal/storage"
)

type Service struct {
	db        *sql.DB
	owners    *storage.OwnerRepo
	tasks     *storage.TaskRepo
	rituals   *storage.RitualRepo
	stats     *storage.StatRepo
	chronicle *storage.ChronicleRepo

	grace time.Duration
	now   func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:        db,
		owners:    storage.NewOwnerRepo(db),
		tasks:     storage.NewTaskRepo(db),
		rituals:   storage.NewRitualRepo(db),
		stats:     storage.NewStatRepo(db),
		chronicle: storage.NewChronicleRepo(db),
		grace:     DefaultGraceWindow,
		now:       time.Now,
	}
}

// SetGraceWindow overrides the default post-midnight grace window.
func (s *Service) SetGraceWindow(d time.Duration) {
	if d >= 0 {
		s.grace = d
	}
}

func (s *Service) OwnerRepo() *storage.OwnerRepo         { return s.owners }
func (s *Service) TaskRepo() *storage.TaskRepo           { return s.tasks }
func (s *Service) RitualRepo() *storage.RitualRepo       { return s.rituals }
func (s *Service) StatRepo() *storage.StatRepo           { return s.stats }
func (s *Service) ChronicleRepo() *storage.ChronicleRepo { return s.chronicle }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}
