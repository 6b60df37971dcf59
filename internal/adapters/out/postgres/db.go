package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mealdispatch/internal/adapters/out/postgres/assignmentrepo"
	"mealdispatch/internal/adapters/out/postgres/catalogrepo"
	"mealdispatch/internal/adapters/out/postgres/earningrepo"
	"mealdispatch/internal/adapters/out/postgres/orderrepo"
	"mealdispatch/internal/adapters/out/postgres/riderrepo"
	"mealdispatch/internal/adapters/out/postgres/settingsrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects through lib/pq and wraps the pool with GORM.
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema, including the partial unique index that allows
// one live assignment per order.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&catalogrepo.RestaurantDTO{},
		&catalogrepo.MealDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&riderrepo.RiderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&earningrepo.EarningDTO{},
		&settingsrepo.SettingDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	err = db.WithContext(ctx).Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON assignments (order_id) WHERE status IN (%d, %d, %d)",
		assignmentrepo.LiveOrderIndex,
		assignmentrepo.ActiveStatuses()[0],
		assignmentrepo.ActiveStatuses()[1],
		assignmentrepo.ActiveStatuses()[2],
	)).Error
	if err != nil {
		return fmt.Errorf("create %s: %w", assignmentrepo.LiveOrderIndex, err)
	}

	return nil
}
