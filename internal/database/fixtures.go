package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// DefaultFixtures returns the embedded demo data set
func DefaultFixtures() []byte {
	return defaultFixtures
}

// Fixtures is the YAML document accepted by LoadFixtures. IDs are explicit so
// fixtures can reference each other.
type Fixtures struct {
	Users []struct {
		ID        int    `yaml:"id"`
		Username  string `yaml:"username"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Password  string `yaml:"password"`
	} `yaml:"users"`
	Statuses []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"statuses"`
	Labels []struct {
		ID   int    `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"labels"`
	Tasks []struct {
		ID          int    `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Status      int    `yaml:"status"`
		Creator     int    `yaml:"creator"`
		Executor    *int   `yaml:"executor"`
		Labels      []int  `yaml:"labels"`
	} `yaml:"tasks"`
}

// ParseFixtures decodes a fixture document
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// FixtureCounts reports how many rows of each kind were inserted
type FixtureCounts struct {
	Users    int `json:"users"`
	Statuses int `json:"statuses"`
	Labels   int `json:"labels"`
	Tasks    int `json:"tasks"`
}

func (c FixtureCounts) String() string {
	return fmt.Sprintf("%d users, %d statuses, %d labels, %d tasks", c.Users, c.Statuses, c.Labels, c.Tasks)
}

// LoadFixtures inserts the fixture document in one transaction. Plain-text
// passwords are turned into hashes with hash before they are stored.
func LoadFixtures(ctx context.Context, db *sql.DB, dialect Dialect, data []byte, hash func(string) (string, error)) (*FixtureCounts, error) {
	f, err := ParseFixtures(data)
	if err != nil {
		return nil, err
	}

	counts := &FixtureCounts{}
	err = withTx(ctx, db, func(tx *sql.Tx) error {
		c := conn{db: tx, dialect: dialect}
		created := now()

		for _, u := range f.Users {
			pw, err := hash(u.Password)
			if err != nil {
				return fmt.Errorf("user %s: %w", u.Username, err)
			}
			if _, err := c.exec(ctx,
				`INSERT INTO users (id, username, first_name, last_name, password_hash, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				u.ID, u.Username, u.FirstName, u.LastName, pw, created,
			); err != nil {
				return fmt.Errorf("user %s: %w", u.Username, mapWriteError(err))
			}
			counts.Users++
		}

		for _, s := range f.Statuses {
			if _, err := c.exec(ctx,
				`INSERT INTO statuses (id, name, created_at) VALUES (?, ?, ?)`,
				s.ID, s.Name, created,
			); err != nil {
				return fmt.Errorf("status %s: %w", s.Name, mapWriteError(err))
			}
			counts.Statuses++
		}

		for _, l := range f.Labels {
			if _, err := c.exec(ctx,
				`INSERT INTO labels (id, name, created_at) VALUES (?, ?, ?)`,
				l.ID, l.Name, created,
			); err != nil {
				return fmt.Errorf("label %s: %w", l.Name, mapWriteError(err))
			}
			counts.Labels++
		}

		labels := &LabelRepo{c: c}
		for _, t := range f.Tasks {
			if _, err := c.exec(ctx,
				`INSERT INTO tasks (id, name, description, status_id, creator_id, executor_id, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.Name, t.Description, t.Status, t.Creator, ptrToNullInt64(t.Executor), created,
			); err != nil {
				return fmt.Errorf("task %s: %w", t.Name, mapWriteError(err))
			}
			if err := labels.SetTaskLabels(ctx, t.ID, t.Labels); err != nil {
				return fmt.Errorf("task %s labels: %w", t.Name, err)
			}
			counts.Tasks++
		}

		if dialect == DialectPostgres {
			return resetSequences(ctx, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// resetSequences moves identity sequences past explicitly inserted ids.
// SQLite AUTOINCREMENT tracks the maximum id on its own.
func resetSequences(ctx context.Context, c conn) error {
	for _, table := range []string{"users", "statuses", "labels", "tasks"} {
		q := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
			table)
		if _, err := c.exec(ctx, q); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
