package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/finance"
	"github.com/stitchdesk/backend/internal/domain/identity"
	"github.com/stitchdesk/backend/internal/domain/measurement"
	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/partner"
)

// newTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps the memory database alive for the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&identity.Tenant{},
		&identity.User{},
		&partner.Customer{},
		&partner.Jobber{},
		&catalog.Outfit{},
		&catalog.MeasurementField{},
		&measurement.Record{},
		&measurement.RecordDetail{},
		&orders.Order{},
		&orders.OrderDetail{},
		&finance.Payment{},
	))

	return db
}
