package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one row of the kv_entries table.
type entry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:128"`
	Value     []byte `gorm:"column:entry_value;not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "kv_entries" }

// SQL stores values in a single kv_entries table through GORM.
type SQL struct {
	db *gorm.DB
}

// NewSQL opens the database for driver/dsn, sizes the pool and migrates
// the kv_entries table.
func NewSQL(driver, dsn string) (*SQL, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("kv/sql: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("kv/sql: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("kv/sql: ping: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("kv/sql: migrate: %w", err)
	}
	return &SQL{db: db}, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("kv/sql: unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	var e entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/sql: get %s: %w", key, err)
	}
	return e.Value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("kv/sql: set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("kv/sql: delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
