package database

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// openTestDB creates a migrated SQLite database in a temporary directory
func openTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	db := openTestDB(t)

	tables := []string{"users", "sessions", "quiz_results", "theory_topics", "theory_tutorials", "migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running again is a no-op
	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", count)
	}
}

func TestRunMigrationsMissingDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.RunMigrations(t.TempDir()); err == nil {
		t.Error("Expected error when no migration files exist")
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	db := openTestDB(t)

	insert := "INSERT INTO users (email, name, oauth_provider, oauth_subject) VALUES (?, ?, ?, ?)"

	err := db.WithTx(func(tx *Tx) error {
		_, err := tx.ExecReturningID(insert, "a@example.com", "Ala", "google", "1")
		return err
	})
	if err != nil {
		t.Fatalf("Committed transaction failed: %v", err)
	}

	err = db.WithTx(func(tx *Tx) error {
		if _, err := tx.Exec(insert, "b@example.com", "Bartek", "google", "2"); err != nil {
			return err
		}
		// Violates the unique (provider, subject) constraint
		_, err := tx.Exec(insert, "c@example.com", "Celina", "google", "2")
		return err
	})
	if err == nil {
		t.Fatal("Expected unique constraint error")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user after rollback, got %d", count)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`,
		"orphan", 999, time.Now().Add(time.Hour))
	if err == nil {
		t.Error("Expected foreign key violation for unknown user")
	}
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	db := openTestDB(t)

	id, err := db.ExecReturningID("INSERT INTO users (email, name, oauth_provider, oauth_subject) VALUES (?, ?, ?, ?)",
		"concurrent@example.com", "Concurrent", "google", "c1")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var name string
			if err := db.QueryRow("SELECT name FROM users WHERE id = ?", id).Scan(&name); err != nil {
				t.Errorf("Concurrent read failed: %v", err)
				return
			}
			if name != "Concurrent" {
				t.Errorf("Expected name 'Concurrent', got '%s'", name)
			}
		}()
	}
	wg.Wait()
}
