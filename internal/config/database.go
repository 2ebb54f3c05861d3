package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database selected by DB_DRIVER.
func InitDB(s *Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(s.DBDSN)
	case DriverSQLite:
		dialector = sqlite.Open(withForeignKeys(s.DBDSN))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", s.DBDriver)
	}

	level := logger.Warn
	if s.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	Logger.Info("Database connected", zap.String("driver", s.DBDriver))
	return db, nil
}

// withForeignKeys turns on sqlite foreign key enforcement for the DSN.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
