package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stitchdesk/backend/internal/domain/measurement"
	"github.com/stitchdesk/backend/internal/domain/orders"
)

// GormSubmissionStore commits a placed order together with the
// measurement records captured during composition in one transaction.
type GormSubmissionStore struct {
	db *Database
}

// NewGormSubmissionStore creates a new GormSubmissionStore
func NewGormSubmissionStore(db *Database) *GormSubmissionStore {
	return &GormSubmissionStore{db: db}
}

// SaveSubmission persists the order, its details and all measurement
// records atomically. A failure anywhere rolls back everything.
func (s *GormSubmissionStore) SaveSubmission(ctx context.Context, order *orders.Order, records []*measurement.Record) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		tx = tx.WithContext(ctx)

		for _, record := range records {
			if err := tx.Omit("Details").Save(record).Error; err != nil {
				return err
			}
			if err := tx.
				Where("record_id = ?", record.ID).
				Delete(&measurement.RecordDetail{}).Error; err != nil {
				return err
			}
			if len(record.Details) > 0 {
				if err := tx.Create(&record.Details).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Omit("Details").Create(order).Error; err != nil {
			return err
		}
		if len(order.Details) == 0 {
			return nil
		}
		return tx.Create(&order.Details).Error
	})
}
