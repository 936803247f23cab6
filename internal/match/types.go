package match

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/courtside/matchpoint/internal/scoring"
)

// store handles database operations for persisted matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Match is a validated, scored match as persisted.
type Match struct {
	ID           string                  `json:"id"`
	ClubID       string                  `json:"club_id"`
	CategoryID   string                  `json:"category_id"`
	Format       scoring.MatchFormat     `json:"format"`
	BestOf       int                     `json:"best_of"`
	DecidingSet  scoring.DecidingSetType `json:"deciding_set_type"`
	Teams        []scoring.Team          `json:"teams"`
	Sets         []scoring.SetScore      `json:"sets"`
	Participants []scoring.Participant   `json:"participants"`
	PlayedAt     int64                   `json:"played_at"`
	CreatedAt    int64                   `json:"created_at"`
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError marks a rejection the client can correct. Everything the
// scoring engine refuses ends up wrapped in one of these.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}
