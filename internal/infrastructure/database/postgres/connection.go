package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scholarship-portal/internal/config"
	"scholarship-portal/internal/infrastructure/database/postgres/models"
	"scholarship-portal/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

type DB struct {
	*gorm.DB
}

func NewDB(cfg *config.Config) (*DB, error) {
	dialector := postgres.New(postgres.Config{
		DriverName: "pgx",
		DSN:        cfg.Database.DSN(),
	})

	db, err := Open(dialector, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
		zap.Int("max_open_connections", maxOpenConns),
		zap.Int("max_idle_connections", maxIdleConns),
	)

	return db, nil
}

// Open connects through any gorm dialector and applies the pool settings.
func Open(dialector gorm.Dialector, environment string) (*DB, error) {
	gormLogLevel := gormLogger.Info
	switch environment {
	case "production":
		gormLogLevel = gormLogger.Warn
	case "test":
		gormLogLevel = gormLogger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &DB{DB: db}, nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrateModels derives the schema from the gorm models. Production schemas
// come from Migrate; this serves engines the SQL migrations do not target.
func (d *DB) AutoMigrateModels() error {
	return d.DB.AutoMigrate(
		&models.UserModel{},
		&models.StudentModel{},
		&models.SponsorModel{},
		&models.ScholarshipModel{},
	)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}
