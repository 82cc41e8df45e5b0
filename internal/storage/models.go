package storage

import "time"

type Owner struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID               int64
	OwnerID          string
	Title            string
	Category         string
	Importance       string
	EstimatedMinutes int
	Details          *string
	Subtasks         []Subtask
	Completed        bool
	CreatedAt        time.Time
	DueDate          *time.Time
	OriginRitualID   *int64
}

type Ritual struct {
	ID               int64
	OwnerID          string
	Title            string
	Importance       string
	EstimatedMinutes int
	Details          *string
	Subtasks         []Subtask
	CreatedAt        time.Time
}

// Stat is the per-owner streak record. History holds 0/1 day outcomes,
// newest last, capped at ten entries by the engine.
type Stat struct {
	OwnerID        string
	CurrentStreak  int
	MaxStreak      int
	History        []int
	LastSealedDate string
}

// ChronicleEntry is the sealed record for one owner and one calendar date.
// Rows are never updated after creation; UNIQUE(owner_id, date_key) in the
// schema is what makes sealing idempotent.
type ChronicleEntry struct {
	ID                  int64
	OwnerID             string
	DateKey             string
	CreatedAt           time.Time
	Victories           []string
	Retained            []string
	ReflectionVictories *string
	ReflectionShadow    *string
	ReflectionIntention *string
	Streak              int
	SealType            string
}
