package engine

import "strings"

type Category string

const (
	CategoryTask   Category = "task"
	CategoryRitual Category = "ritual"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTask, CategoryRitual:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing/invalid.
const DefaultCategory Category = CategoryTask

// ParseCategory parses user input to a Category.
func ParseCategory(input string) Category {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "ritual", "recurring":
		return CategoryRitual
	case "task", "":
		return CategoryTask
	default:
		return DefaultCategory
	}
}

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow, ImportanceMedium, ImportanceHigh:
		return true
	default:
		return false
	}
}

const DefaultImportance Importance = ImportanceMedium

// ParseImportance parses user input to an Importance.
// If input is empty or unrecognized, returns DefaultImportance.
func ParseImportance(input string) Importance {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "low", "l":
		return ImportanceLow
	case "medium", "med", "m":
		return ImportanceMedium
	case "high", "h":
		return ImportanceHigh
	default:
		return DefaultImportance
	}
}

// DefaultEstimatedMinutes is the baseline task duration when none is given.
const DefaultEstimatedMinutes = 30
