package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// Store is the on-disk JSON document. Each habit record uses the interop
// shape: {id, name, periodicity, created_at, check_offs} with RFC 3339
// timestamps.
type Store struct {
	Version int                     `json:"version"`
	Habits  map[string]models.Habit `json:"habits"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Habits:  make(map[string]models.Habit),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitual init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		s.store = nil
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}

	// The file may have been edited out-of-band; re-check the aggregate
	// invariants before trusting it.
	for id, habit := range s.store.Habits {
		if habit.ID == "" {
			habit.ID = id
			s.store.Habits[id] = habit
		}
		if err := habit.Validate(); err != nil {
			s.store = nil
			return fmt.Errorf("corrupt storage: %w", err)
		}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) CreateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; ok {
		return fmt.Errorf("habit already exists: %s", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, ErrHabitNotFound
	}

	return habit, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		habits = append(habits, habit)
	}

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return ErrHabitNotFound
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return false, nil
	}

	delete(s.store.Habits, id)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONStore) AddCheckOff(id string, t time.Time) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return false, nil
	}

	if !habit.AddCheckOff(t) {
		return false, nil
	}

	s.store.Habits[id] = habit
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
