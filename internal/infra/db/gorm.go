package db

import (
	"regexp"
	"strings"
	"time"

	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/modules/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

var sslmodeRegex = regexp.MustCompile(`(?i)\bsslmode\s*=\s*\w+`)

func New(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// unique and foreign key violations surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsnWithTLS(cfg.Database)), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return db, nil
}

// dsnWithTLS forces sslmode=require when TLS is enabled, replacing any sslmode already in the DSN.
func dsnWithTLS(c config.DatabaseConfig) string {
	dsn := c.DSN
	if !c.EnableTLS {
		return dsn
	}
	if sslmodeRegex.MatchString(dsn) {
		return sslmodeRegex.ReplaceAllString(dsn, "sslmode=require")
	}
	if dsn != "" && !strings.HasSuffix(dsn, " ") {
		dsn += " "
	}
	return dsn + "sslmode=require"
}

// Migrate creates or updates every marketplace table. Users come first so the
// foreign keys of the other tables resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectModule{},
		&model.SmartContract{},
		&model.Proposal{},
		&model.Message{},
		&model.Milestone{},
	)
}

// RegisterOpenTelemetryPlugin registers the OpenTelemetry plugin for GORM.
// Call it after telemetry.SetupTracing so the global tracer provider is in place.
func RegisterOpenTelemetryPlugin(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin())
}
