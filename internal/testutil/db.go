package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/taskmanager/internal/database"
)

// FixturePassword is the password of the "test1" fixture user
const FixturePassword = "http://localhost:8000/"

// CaptureOutput captures stdout during function execution
func CaptureOutput(t testing.TB, fn func()) string {
	t.Helper()

	// Save original stdout
	oldStdout := os.Stdout

	// Create pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Replace stdout with pipe writer
	os.Stdout = w

	// Channel to collect output
	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// Execute function
	fn()

	// Close writer and restore stdout
	_ = w.Close()
	os.Stdout = oldStdout

	// Get captured output
	return <-outC
}

// SetupTestDB creates an in-memory SQLite database with the full schema
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()
	db, _, err := database.Open(context.Background(), database.Options{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepository returns a Repository over a fresh in-memory database
func SetupTestRepository(t testing.TB) (*sql.DB, *database.Repository) {
	t.Helper()
	db := SetupTestDB(t)
	return db, database.NewRepository(db, database.DialectSQLite)
}

// HashPassword hashes with the minimum bcrypt cost to keep tests fast
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(b), err
}

// LoadDefaultFixtures loads the embedded demo data set
func LoadDefaultFixtures(t testing.TB, db *sql.DB) {
	t.Helper()
	if _, err := database.LoadFixtures(context.Background(), db, database.DialectSQLite,
		database.DefaultFixtures(), HashPassword); err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}
}

// CreateTestUser creates a user with the given username and returns its ID
func CreateTestUser(t testing.TB, db *sql.DB, username, password string) int {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return insertReturningID(t, db,
		"INSERT INTO users (username, first_name, last_name, password_hash, created_at) VALUES (?, '', '', ?, ?) RETURNING id",
		username, hash, time.Now().UTC())
}

// CreateTestStatus creates a status and returns its ID
func CreateTestStatus(t testing.TB, db *sql.DB, name string) int {
	t.Helper()
	return insertReturningID(t, db,
		"INSERT INTO statuses (name, created_at) VALUES (?, ?) RETURNING id", name, time.Now().UTC())
}

// CreateTestLabel creates a label and returns its ID
func CreateTestLabel(t testing.TB, db *sql.DB, name string) int {
	t.Helper()
	return insertReturningID(t, db,
		"INSERT INTO labels (name, created_at) VALUES (?, ?) RETURNING id", name, time.Now().UTC())
}

// CreateTestTask creates a task with no executor and returns its ID
func CreateTestTask(t testing.TB, db *sql.DB, name string, statusID, creatorID int, labelIDs ...int) int {
	t.Helper()
	taskID := insertReturningID(t, db,
		"INSERT INTO tasks (name, description, status_id, creator_id, created_at) VALUES (?, '', ?, ?, ?) RETURNING id",
		name, statusID, creatorID, time.Now().UTC())
	for _, labelID := range labelIDs {
		if _, err := db.ExecContext(context.Background(),
			"INSERT INTO task_labels (task_id, label_id) VALUES (?, ?)", taskID, labelID); err != nil {
			t.Fatalf("Failed to attach label: %v", err)
		}
	}
	return taskID
}

// CountRows returns the number of rows in table
func CountRows(t testing.TB, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func insertReturningID(t testing.TB, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var id int
	if err := db.QueryRowContext(context.Background(), query, args...).Scan(&id); err != nil {
		t.Fatalf("Failed to insert test row: %v", err)
	}
	return id
}
