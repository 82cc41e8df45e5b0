package engine

import "fmt"

// AlreadySealedError is returned when a manual seal targets a date that
// already has a chronicle entry. The automatic path treats the same
// condition as a no-op instead.
type AlreadySealedError struct {
	DateKey string
}

func (e AlreadySealedError) Error() string {
	return fmt.Sprintf("day %s is already sealed", e.DateKey)
}
