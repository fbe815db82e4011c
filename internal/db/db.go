package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/tideflow/internal/logging"
	"github.com/balkashynov/tideflow/internal/models"
	"github.com/balkashynov/tideflow/internal/store"
)

// Store is a store.Store backed by SQLite
type Store struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	newID store.IDFunc
}

// Open sets up the database connection and runs migrations
func Open(dbPath string, log *zap.SugaredLogger, idFunc store.IDFunc) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if log == nil {
		log = logging.Nop()
	}
	if idFunc == nil {
		idFunc = store.NewID
	}
	log.Debugw("database opened", "path", dbPath)

	return &Store{db: db, log: log, newID: idFunc}, nil
}

// migrate is swapped in tests
var migrate = runMigrations

// runMigrations creates/updates the database schema
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&models.Task{})
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
