package repository

import (
	"path/filepath"
	"testing"
	"time"

	"sluchapp/internal/database"
	"sluchapp/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo *UserRepository, subject, name string) *models.User {
	t.Helper()
	user, err := repo.UpsertOAuthUser("google", subject, subject+"@example.com", name)
	if err != nil {
		t.Fatalf("UpsertOAuthUser() error = %v", err)
	}
	return user
}

func TestUserRepositoryUpsert(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	first := createUser(t, repo, "sub-1", "Ala Kowalska")
	if first.ID == 0 {
		t.Fatal("expected user ID to be assigned")
	}

	again, err := repo.UpsertOAuthUser("google", "sub-1", "new@example.com", "Ala Nowak")
	if err != nil {
		t.Fatalf("UpsertOAuthUser() error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second login created a new user: %d != %d", again.ID, first.ID)
	}

	stored, err := repo.GetUserByID(first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Email != "new@example.com" || stored.Name != "Ala Nowak" {
		t.Errorf("stored user = %+v, want refreshed email and name", stored)
	}

	missing, err := repo.GetUserByID(9999)
	if err != nil || missing != nil {
		t.Errorf("GetUserByID(missing) = %v, %v, want nil, nil", missing, err)
	}

	createUser(t, repo, "sub-2", "Bartek")
	users, err := repo.GetAllUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("len(GetAllUsers()) = %d, want 2", len(users))
	}
}

func TestUserRepositorySessions(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "sub-1", "Ala")

	now := time.Now()
	if _, err := repo.CreateSession("live", user.ID, now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateSession("stale", user.ID, now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	session, err := repo.GetSession("live")
	if err != nil {
		t.Fatal(err)
	}
	if session == nil || session.UserID != user.ID || session.IsExpired() {
		t.Fatalf("GetSession(live) = %+v", session)
	}

	removed, err := repo.DeleteExpiredSessions(now)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Errorf("DeleteExpiredSessions() removed %d, want 1", removed)
	}

	if s, _ := repo.GetSession("stale"); s != nil {
		t.Error("expired session still present")
	}

	if err := repo.DeleteSession("live"); err != nil {
		t.Fatal(err)
	}
	if s, _ := repo.GetSession("live"); s != nil {
		t.Error("deleted session still present")
	}
}

func TestResultRepository(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewResultRepository(db)

	ala := createUser(t, users, "sub-1", "Ala")
	bartek := createUser(t, users, "sub-2", "Bartek")

	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	results := []models.SavedResult{
		{ID: "r1", UserID: ala.ID, Category: models.CategoryIntervals, Level: "basic", CorrectAnswers: 3, TotalQuestions: 5, Accuracy: 0.6, DurationSeconds: 4.2, Location: models.Location{Lat: 52.4, Lon: 16.9}, CreatedAt: base},
		{ID: "r2", UserID: ala.ID, Category: models.CategoryChords, Level: "advanced", CorrectAnswers: 5, TotalQuestions: 5, Accuracy: 1, DurationSeconds: 10, Location: models.Location{Lat: 52.38, Lon: 16.85}, CreatedAt: base.Add(48 * time.Hour)},
		{ID: "r3", UserID: bartek.ID, Category: models.CategoryChords, Level: "basic", TotalQuestions: 5, CreatedAt: base},
	}
	for i := range results {
		if err := repo.Create(&results[i]); err != nil {
			t.Fatalf("Create(%s) error = %v", results[i].ID, err)
		}
	}

	got, err := repo.GetByID("r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != models.CategoryIntervals || got.CorrectAnswers != 3 || got.DurationSeconds != 4.2 {
		t.Errorf("GetByID(r1) = %+v", got)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}

	if missing, err := repo.GetByID("nope"); err != nil || missing != nil {
		t.Errorf("GetByID(missing) = %v, %v", missing, err)
	}

	list, err := repo.ListByUser(ala.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "r2" {
		t.Errorf("ListByUser() = %+v, want r2 first", list)
	}

	limited, _ := repo.ListByUser(ala.ID, 1)
	if len(limited) != 1 {
		t.Errorf("ListByUser(limit 1) returned %d", len(limited))
	}

	timestamps, err := repo.ListTimestampsByUser(ala.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(timestamps) != 2 || !timestamps[1].Equal(base.Add(48*time.Hour)) {
		t.Errorf("ListTimestampsByUser() = %v", timestamps)
	}

	locations, err := repo.ListLocationsByUser(ala.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(locations) != 2 || locations[0].Lat != 52.4 {
		t.Errorf("ListLocationsByUser() = %v", locations)
	}

	count, _ := repo.CountByUser(bartek.ID)
	if count != 1 {
		t.Errorf("CountByUser() = %d, want 1", count)
	}

	all, _ := repo.ListAll()
	if len(all) != 3 {
		t.Errorf("len(ListAll()) = %d, want 3", len(all))
	}

	if err := repo.Create(&models.SavedResult{ID: "r1", UserID: ala.ID}); err == nil {
		t.Error("expected duplicate ID to fail")
	}
}

func TestTheoryRepository(t *testing.T) {
	repo := NewTheoryRepository(newTestDB(t))

	if n, _ := repo.CountTopics(); n != 0 {
		t.Fatalf("CountTopics() = %d on empty database", n)
	}

	topics := []models.TheoryTopic{
		{ID: "chords", Title: "Akordy", IconName: "piano", SortOrder: 2},
		{ID: "notes", Title: "Czytanie nut", IconName: "notes", SortOrder: 1},
		{ID: "misc", Title: "Inne", SortOrder: 3},
	}
	for _, topic := range topics {
		if err := repo.CreateTopic(topic); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.ListTopics()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "notes" {
		t.Errorf("ListTopics() = %+v, want notes first", list)
	}
	if list[2].IconName != models.DefaultIconName {
		t.Errorf("icon = %q, want default", list[2].IconName)
	}

	tutorial := models.TheoryTutorial{TopicID: "notes", Title: "Czytanie nut", Description: "Pięciolinia", ImageURL: "https://example.com/staff.png"}
	if err := repo.CreateTutorial(tutorial); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetTutorial("notes")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != tutorial {
		t.Errorf("GetTutorial() = %+v, want %+v", got, tutorial)
	}

	if missing, err := repo.GetTutorial("chords"); err != nil || missing != nil {
		t.Errorf("GetTutorial(missing) = %v, %v", missing, err)
	}

	if err := repo.CreateTutorial(models.TheoryTutorial{TopicID: "unknown", Title: "x"}); err == nil {
		t.Error("expected foreign key error for unknown topic")
	}
}
