package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// schemaVersion is stored in PRAGMA user_version. The schema is small and
// fixed, so migrations are applied inline rather than from .sql files.
const schemaVersion = 1

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitual init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	if version < schemaVersion {
		if err := s.migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	if version < 1 {
		if _, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS habits (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				periodicity TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS check_offs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				habit_id TEXT NOT NULL REFERENCES habits(id),
				check_off_time TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_check_offs_habit_id ON check_offs (habit_id);
			PRAGMA user_version = 1;
		`); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) CreateHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO habits (id, name, periodicity, created_at) VALUES (?, ?, ?, ?)",
		habit.ID, habit.Name, string(habit.Periodicity), habit.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	for _, checkOff := range habit.CheckOffs {
		if _, err := tx.Exec(
			"INSERT INTO check_offs (habit_id, check_off_time) VALUES (?, ?)",
			habit.ID, checkOff.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to insert check-off: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	return s.getHabit(s.db, id)
}

// querier lets habit loading run either on the DB or inside a transaction.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLiteStore) getHabit(q querier, id string) (models.Habit, error) {
	row := q.QueryRow("SELECT id, name, periodicity, created_at FROM habits WHERE id = ?", id)

	habit, err := scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, fmt.Errorf("failed to load habit: %w", err)
	}

	checkOffs, err := loadCheckOffs(q, id)
	if err != nil {
		return models.Habit{}, err
	}
	habit.CheckOffs = checkOffs

	return habit, nil
}

func scanHabit(row *sql.Row) (models.Habit, error) {
	var habit models.Habit
	var periodicity, createdAt string

	if err := row.Scan(&habit.ID, &habit.Name, &periodicity, &createdAt); err != nil {
		return models.Habit{}, err
	}

	p, err := period.Parse(periodicity)
	if err != nil {
		return models.Habit{}, err
	}
	habit.Periodicity = p

	habit.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("invalid created_at for habit %s: %w", habit.ID, err)
	}

	return habit, nil
}

func loadCheckOffs(q querier, habitID string) ([]time.Time, error) {
	rows, err := q.Query(
		"SELECT check_off_time FROM check_offs WHERE habit_id = ? ORDER BY check_off_time",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-offs: %w", err)
	}
	defer rows.Close()

	var checkOffs []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := parseTimestamp(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid check-off for habit %s: %w", habitID, err)
		}
		checkOffs = append(checkOffs, t)
	}

	return checkOffs, rows.Err()
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT id FROM habits ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(ids))
	for _, id := range ids {
		habit, err := s.GetHabit(id)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, nil
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE habits SET name = ?, periodicity = ? WHERE id = ?",
		habit.Name, string(habit.Periodicity), habit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHabitNotFound
	}

	// Replace check-offs wholesale; the aggregate is the source of truth.
	if _, err := tx.Exec("DELETE FROM check_offs WHERE habit_id = ?", habit.ID); err != nil {
		return fmt.Errorf("failed to clear check-offs: %w", err)
	}
	for _, checkOff := range habit.CheckOffs {
		if _, err := tx.Exec(
			"INSERT INTO check_offs (habit_id, check_off_time) VALUES (?, ?)",
			habit.ID, checkOff.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to insert check-off: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) DeleteHabit(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM check_offs WHERE habit_id = ?", id); err != nil {
		return false, fmt.Errorf("failed to delete check-offs: %w", err)
	}

	res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete habit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *SQLiteStore) AddCheckOff(id string, t time.Time) (bool, error) {
	// Load-check-insert runs inside one transaction so the per-period
	// uniqueness invariant holds across processes.
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	habit, err := s.getHabit(tx, id)
	if err != nil {
		if err == ErrHabitNotFound {
			return false, nil
		}
		return false, err
	}

	if !habit.AddCheckOff(t) {
		return false, nil
	}

	if _, err := tx.Exec(
		"INSERT INTO check_offs (habit_id, check_off_time) VALUES (?, ?)",
		id, t.Format(time.RFC3339),
	); err != nil {
		return false, fmt.Errorf("failed to insert check-off: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// parseTimestamp accepts RFC 3339 with or without a numeric offset, which
// also covers timestamps written by earlier local-time formats.
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
}
