package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"meatdelivery/internal/adapters/out/postgres/orderrepo"
	"meatdelivery/internal/adapters/out/postgres/partnerrepo"

	"github.com/pressly/goose/v3"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// connectDelays are the waits between connection attempts at startup, while the
// database container may still be coming up.
var connectDelays = []time.Duration{time.Second, 3 * time.Second, 5 * time.Second}

// OpenPostgres connects to Postgres and applies the embedded goose migrations.
func OpenPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err = ping(ctx, db); err != nil {
		return nil, err
	}

	if err = Migrate(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenSQLite opens a SQLite database for local runs and creates the schema from
// the repository models.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err = AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate brings the Postgres schema up to date.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)

	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err = goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// AutoMigrate creates the schema from the GORM models. It is used for SQLite and
// in tests; Postgres goes through Migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusEntryDTO{},
		&partnerrepo.PartnerDTO{},
	)
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	for i := 0; ; i++ {
		err = sqlDB.PingContext(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || i == len(connectDelays) {
			return fmt.Errorf("ping database: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectDelays[i]):
		}
	}
}
