// Package sequencerepo implements the order number counter on a PostgreSQL row.
// Each increment is one upsert statement, so concurrent callers in any number of
// processes never observe the same value.
package sequencerepo

import (
	"context"
	"errors"

	"purchasing/internal/adapters/out/postgres/pgerrs"
	"purchasing/internal/pkg/errs"

	"gorm.io/gorm"
)

// CounterDTO is a named counter row.
type CounterDTO struct {
	ID    string `gorm:"size:64;primaryKey"`
	Value int64  `gorm:"not null"`
}

func (CounterDTO) TableName() string {
	return "counters"
}

// GormSequenceCounter issues values from the counter row identified by key.
type GormSequenceCounter struct {
	db  *gorm.DB
	key string
}

func NewGormSequenceCounter(db *gorm.DB, key string) *GormSequenceCounter {
	return &GormSequenceCounter{db: db, key: key}
}

// Next increments the counter and returns the new value. The row is created on first use.
func (c *GormSequenceCounter) Next(ctx context.Context) (int64, error) {
	var value int64
	err := c.db.WithContext(ctx).Raw(`
		INSERT INTO counters (id, value) VALUES (?, 1)
		ON CONFLICT (id) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, c.key).Scan(&value).Error
	if err != nil {
		return 0, pgerrs.Wrap("increment counter "+c.key, err)
	}
	if value < 1 {
		return 0, errs.NewStorageError("increment counter "+c.key, errors.New("no value returned"))
	}
	return value, nil
}

// EnsureAtLeast raises the counter to n. A higher stored value is kept.
func (c *GormSequenceCounter) EnsureAtLeast(ctx context.Context, n int64) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("n", n, 0, "+inf")
	}
	err := c.db.WithContext(ctx).Exec(`
		INSERT INTO counters (id, value) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET value = GREATEST(counters.value, EXCLUDED.value)
	`, c.key, n).Error
	return pgerrs.Wrap("raise counter "+c.key, err)
}

// Current reads the counter without changing it; 0 when it was never used.
func (c *GormSequenceCounter) Current(ctx context.Context) (int64, error) {
	var dto CounterDTO
	err := c.db.WithContext(ctx).Where("id = ?", c.key).Limit(1).Find(&dto).Error
	if err != nil {
		return 0, pgerrs.Wrap("read counter "+c.key, err)
	}
	return dto.Value, nil
}
