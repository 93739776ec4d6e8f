package database

import (
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// Connect opens the configured database. Production runs against the hosted
// Postgres instance; anything that is not a postgres DSN is treated as a
// sqlite path for local development.
func Connect(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	logger.Info("using sqlite for local development", "dsn", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates every table the dashboard uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.Payment{},
		&domain.Goal{},
		&domain.BusinessVisit{},
		&domain.FormSubmission{},
		&domain.Notification{},
	)
}
