package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// ErrHabitNotFound is returned by lookups for an unknown habit ID. Mutating
// operations (DeleteHabit, AddCheckOff) report a missing habit through their
// boolean result instead.
var ErrHabitNotFound = errors.New("habit not found")

// Provider is the persistence contract the rest of the application depends
// on. Implementations must treat AddCheckOff as one atomic
// load-check-insert unit so the one-check-off-per-period invariant holds
// across processes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	CreateHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes a habit and its check-offs. Returns false when
	// the habit does not exist.
	DeleteHabit(id string) (bool, error)
	// AddCheckOff records a completion for the habit. Returns false when
	// the habit is missing or a check-off already exists for the same
	// period; an error only signals a storage fault.
	AddCheckOff(id string, t time.Time) (bool, error)

	// Utils
	GetConfigPath() string
}
