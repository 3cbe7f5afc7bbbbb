package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

func newTestStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habits.db")),
		"json":   NewJSONStore(filepath.Join(dir, "habits.json")),
	}
}

func mustInit(t *testing.T, store Provider) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
}

func sampleHabit(name string, p period.Periodicity) models.Habit {
	h := models.New(name, p)
	h.CreatedAt = time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)
	return h
}

func TestCreateAndGetHabit(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			habit := sampleHabit("Exercise", period.Daily)
			habit.AddCheckOff(time.Date(2026, 8, 17, 8, 0, 0, 0, time.Local))
			habit.AddCheckOff(time.Date(2026, 8, 18, 8, 0, 0, 0, time.Local))

			if err := store.CreateHabit(habit); err != nil {
				t.Fatalf("CreateHabit() failed: %v", err)
			}

			got, err := store.GetHabit(habit.ID)
			if err != nil {
				t.Fatalf("GetHabit() failed: %v", err)
			}
			if got.Name != "Exercise" || got.Periodicity != period.Daily {
				t.Errorf("got %+v", got)
			}
			if len(got.CheckOffs) != 2 {
				t.Fatalf("check-off count = %d, want 2", len(got.CheckOffs))
			}
			if !got.CheckOffs[0].Equal(habit.CheckOffs[0]) {
				t.Errorf("first check-off = %v, want %v", got.CheckOffs[0], habit.CheckOffs[0])
			}
		})
	}
}

func TestGetHabitNotFound(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			_, err := store.GetHabit("no-such-id")
			if !errors.Is(err, ErrHabitNotFound) {
				t.Errorf("error = %v, want ErrHabitNotFound", err)
			}
		})
	}
}

func TestGetAllHabits(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			all, err := store.GetAllHabits()
			if err != nil {
				t.Fatalf("GetAllHabits() failed: %v", err)
			}
			if len(all) != 0 {
				t.Fatalf("expected empty store, got %d habits", len(all))
			}

			for _, name := range []string{"Read", "Run", "Shop"} {
				if err := store.CreateHabit(sampleHabit(name, period.Daily)); err != nil {
					t.Fatalf("CreateHabit(%s) failed: %v", name, err)
				}
			}

			all, err = store.GetAllHabits()
			if err != nil {
				t.Fatalf("GetAllHabits() failed: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("got %d habits, want 3", len(all))
			}
		})
	}
}

func TestUpdateHabit(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			habit := sampleHabit("Exercise", period.Daily)
			if err := store.CreateHabit(habit); err != nil {
				t.Fatalf("CreateHabit() failed: %v", err)
			}

			habit.Name = "Morning exercise"
			habit.AddCheckOff(time.Date(2026, 8, 19, 7, 0, 0, 0, time.Local))
			if err := store.UpdateHabit(habit); err != nil {
				t.Fatalf("UpdateHabit() failed: %v", err)
			}

			got, err := store.GetHabit(habit.ID)
			if err != nil {
				t.Fatalf("GetHabit() failed: %v", err)
			}
			if got.Name != "Morning exercise" {
				t.Errorf("name = %q", got.Name)
			}
			if len(got.CheckOffs) != 1 {
				t.Errorf("check-off count = %d, want 1", len(got.CheckOffs))
			}
		})
	}
}

func TestUpdateHabitNotFound(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			err := store.UpdateHabit(sampleHabit("Ghost", period.Daily))
			if !errors.Is(err, ErrHabitNotFound) {
				t.Errorf("error = %v, want ErrHabitNotFound", err)
			}
		})
	}
}

func TestDeleteHabit(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			habit := sampleHabit("Exercise", period.Daily)
			habit.AddCheckOff(time.Date(2026, 8, 17, 8, 0, 0, 0, time.Local))
			if err := store.CreateHabit(habit); err != nil {
				t.Fatalf("CreateHabit() failed: %v", err)
			}

			deleted, err := store.DeleteHabit(habit.ID)
			if err != nil {
				t.Fatalf("DeleteHabit() failed: %v", err)
			}
			if !deleted {
				t.Error("expected deleted = true")
			}

			if _, err := store.GetHabit(habit.ID); !errors.Is(err, ErrHabitNotFound) {
				t.Errorf("habit still present after delete: %v", err)
			}

			// Deleting again reports false without error.
			deleted, err = store.DeleteHabit(habit.ID)
			if err != nil {
				t.Fatalf("repeat DeleteHabit() failed: %v", err)
			}
			if deleted {
				t.Error("expected deleted = false on repeat")
			}
		})
	}
}

func TestAddCheckOff(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			habit := sampleHabit("Exercise", period.Daily)
			if err := store.CreateHabit(habit); err != nil {
				t.Fatalf("CreateHabit() failed: %v", err)
			}

			morning := time.Date(2026, 8, 19, 8, 0, 0, 0, time.Local)
			evening := time.Date(2026, 8, 19, 21, 0, 0, 0, time.Local)

			added, err := store.AddCheckOff(habit.ID, morning)
			if err != nil {
				t.Fatalf("AddCheckOff() failed: %v", err)
			}
			if !added {
				t.Fatal("first check-off should be accepted")
			}

			// Same day is a duplicate.
			added, err = store.AddCheckOff(habit.ID, evening)
			if err != nil {
				t.Fatalf("duplicate AddCheckOff() failed: %v", err)
			}
			if added {
				t.Error("same-day check-off should be rejected")
			}

			added, err = store.AddCheckOff(habit.ID, morning.AddDate(0, 0, 1))
			if err != nil {
				t.Fatalf("next-day AddCheckOff() failed: %v", err)
			}
			if !added {
				t.Error("next-day check-off should be accepted")
			}

			got, err := store.GetHabit(habit.ID)
			if err != nil {
				t.Fatalf("GetHabit() failed: %v", err)
			}
			if len(got.CheckOffs) != 2 {
				t.Errorf("check-off count = %d, want 2", len(got.CheckOffs))
			}
		})
	}
}

func TestAddCheckOffMissingHabit(t *testing.T) {
	for backend, store := range newTestStores(t) {
		t.Run(backend, func(t *testing.T) {
			mustInit(t, store)

			added, err := store.AddCheckOff("no-such-id", time.Now())
			if err != nil {
				t.Fatalf("AddCheckOff() failed: %v", err)
			}
			if added {
				t.Error("check-off against a missing habit should report false")
			}
		})
	}
}

func TestLoadWithoutInit(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Provider{
		"sqlite": NewSQLiteStore(filepath.Join(dir, "missing.db")),
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
	}

	for backend, store := range stores {
		t.Run(backend, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Error("Load() on a missing store should fail")
			}
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.db")

	store := NewSQLiteStore(path)
	mustInit(t, store)

	habit := sampleHabit("Exercise", period.Weekly)
	habit.AddCheckOff(time.Date(2026, 8, 17, 10, 0, 0, 0, time.Local))
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() after reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() after reopen failed: %v", err)
	}
	if got.Periodicity != period.Weekly || len(got.CheckOffs) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestJSONPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")

	store := NewJSONStore(path)
	mustInit(t, store)

	habit := sampleHabit("Read", period.Daily)
	habit.AddCheckOff(time.Date(2026, 8, 18, 8, 0, 0, 0, time.Local))
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() after reopen failed: %v", err)
	}

	got, err := reopened.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() after reopen failed: %v", err)
	}
	if got.Name != "Read" || len(got.CheckOffs) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestJSONInitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")

	if err := NewJSONStore(path).Init(); err != nil {
		t.Fatalf("first Init() failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("second Init() should refuse to overwrite an existing store")
	}
}

func TestJSONLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err == nil {
		t.Error("Load() of malformed JSON should fail")
	}
}

func TestJSONLoadRejectsInvalidHabit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")

	// A hand-edited file with an unknown periodicity must not load.
	doc := Store{
		Version: 1,
		Habits: map[string]models.Habit{
			"h1": {ID: "h1", Name: "Read", Periodicity: "monthly"},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err == nil {
		t.Error("Load() of an invalid habit should fail")
	}
}

func TestJSONRoundTripFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habits.json")
	store := NewJSONStore(path)
	mustInit(t, store)

	habit := sampleHabit("Exercise", period.Daily)
	habit.AddCheckOff(time.Date(2026, 8, 19, 8, 30, 0, 0, time.Local))
	if err := store.CreateHabit(habit); err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}

	var habits map[string]map[string]json.RawMessage
	if err := json.Unmarshal(doc["habits"], &habits); err != nil {
		t.Fatalf("habits block malformed: %v", err)
	}

	record := habits[habit.ID]
	for _, field := range []string{"id", "name", "periodicity", "created_at", "check_offs"} {
		if _, ok := record[field]; !ok {
			t.Errorf("habit record missing %q field", field)
		}
	}
}
