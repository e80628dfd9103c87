package database

import (
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fieldwatch/entities"
)

// Models lists every table the service owns, in migration order.
var Models = []any{
	&entities.Field{},
	&entities.Alert{},
	&entities.SensorReading{},
	&entities.ProcessingJob{},
	&entities.Image{},
	&entities.Report{},
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer at a time; SQLite serializes writes anyway and this avoids SQLITE_BUSY.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
