package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sessionRecord is the single-row table backing the sqlite storage option.
type sessionRecord struct {
	ID      int    `gorm:"column:id;primaryKey"`
	Payload []byte `gorm:"column:payload;not null"`
}

func (sessionRecord) TableName() string {
	return "session_records"
}

// SQLiteStorage persists the session in an on-device sqlite database.
type SQLiteStorage struct {
	db *gorm.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("session database path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (*State, error) {
	var record sessionRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session row: %w", err)
	}
	return decodeState(record.Payload)
}

func (s *SQLiteStorage) Save(ctx context.Context, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	record := sessionRecord{ID: 1, Payload: raw}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("save session row: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", 1).Error; err != nil {
		return fmt.Errorf("clear session row: %w", err)
	}
	return nil
}
