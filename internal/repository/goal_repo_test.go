package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	return db
}

func testGoalRepo(db *gorm.DB) *GoalRepository {
	return NewGoalRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func TestGoalListEnhancedSchema(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&domain.Goal{}))
	repo := testGoalRepo(db)
	ctx := context.Background()

	clientID := uuid.New()
	_, err := repo.Create(ctx, &domain.Goal{
		Title:     "five new clients",
		Frequency: domain.GoalMonthly,
		Target:    5,
		ClientID:  &clientID,
	})
	require.NoError(t, err)

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, domain.GoalMonthly, goals[0].Frequency)
	require.NotNil(t, goals[0].ClientID)
	assert.Equal(t, clientID, *goals[0].ClientID)
}

// A goals table that predates the frequency and client_id columns must still
// load, with weekly frequency and global scope filled in.
func TestGoalListFallsBackOnLegacyTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE goals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		target INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`).Error)

	id := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Exec(
		`INSERT INTO goals (id, title, target, created_at) VALUES (?, ?, ?, ?)`,
		id, "legacy goal", 3, created,
	).Error)

	repo := testGoalRepo(db)
	goals, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 1)

	got := goals[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "legacy goal", got.Title)
	assert.Equal(t, 3, got.Target)
	assert.Equal(t, domain.DefaultGoalFrequency, got.Frequency)
	assert.Nil(t, got.ClientID, "legacy rows are global goals")
}

func TestGoalGetByIDFallsBackOnLegacyTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec(`CREATE TABLE goals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		target INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`).Error)

	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO goals (id, title, target, created_at) VALUES (?, ?, ?, ?)`,
		id, "legacy goal", 7, time.Now().UTC(),
	).Error)

	repo := testGoalRepo(db)
	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoalFrequency, got.Frequency)
	assert.Equal(t, 7, got.Target)
}

func TestGoalUnknownFrequencyNormalizedOnRead(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&domain.Goal{}))
	repo := testGoalRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Goal{Title: "odd", Frequency: "fortnightly", Target: 2})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoalFrequency, got.Frequency)
}
