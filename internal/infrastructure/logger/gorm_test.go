package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func stmt(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLoggerDefaults(t *testing.T) {
	log, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, defaultSlowThreshold, log.SlowThreshold)
	assert.True(t, log.SkipNotFound)
}

func TestGormLoggerLogMode(t *testing.T) {
	log, _ := newObservedGormLogger(gormlogger.Info)

	quieter := log.LogMode(gormlogger.Error)
	require.IsType(t, &GormLogger{}, quieter)
	assert.Equal(t, gormlogger.Error, quieter.(*GormLogger).level)
	assert.Equal(t, gormlogger.Info, log.level, "original is unchanged")
}

func TestGormLoggerTraceQuery(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Info)

	log.Trace(context.Background(), time.Now(), stmt("SELECT * FROM customers WHERE tenant_id = $1", 3), nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sql query", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM customers WHERE tenant_id = $1", fields["sql"])
	assert.Equal(t, int64(3), fields["rows"])
}

func TestGormLoggerTraceError(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Error)

	log.Trace(context.Background(), time.Now(), stmt("INSERT INTO payments", 0), errors.New("duplicate key"))

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sql error", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "duplicate key", entries[0].ContextMap()["error"])
}

func TestGormLoggerTraceSkipsRecordNotFound(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Error)

	log.Trace(context.Background(), time.Now(), stmt("SELECT 1", 0), gormlogger.ErrRecordNotFound)
	assert.Empty(t, recorded.All())

	log.SkipNotFound = false
	log.Trace(context.Background(), time.Now(), stmt("SELECT 1", 0), gormlogger.ErrRecordNotFound)
	assert.Len(t, recorded.All(), 1)
}

func TestGormLoggerTraceSlowQuery(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Warn)
	log.SlowThreshold = time.Millisecond

	log.Trace(context.Background(), time.Now().Add(-50*time.Millisecond), stmt("SELECT pg_sleep(1)", 1), nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow query", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap(), "threshold")
}

func TestGormLoggerTraceSilent(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Silent)

	log.Trace(context.Background(), time.Now(), stmt("SELECT 1", 1), errors.New("ignored"))
	assert.Empty(t, recorded.All())
}

func TestGormLoggerTraceRequestID(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Info)

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
	log.Trace(ctx, time.Now(), stmt("SELECT 1", 1), nil)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
}

func TestGormLoggerLeveledMessages(t *testing.T) {
	log, recorded := newObservedGormLogger(gormlogger.Warn)
	ctx := context.Background()

	log.Info(ctx, "migration step %d", 1)
	assert.Empty(t, recorded.All(), "info suppressed below info level")

	log.Warn(ctx, "connection pool at %d%%", 90)
	log.Error(ctx, "connect failed: %s", "refused")
	assert.Len(t, recorded.All(), 2)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.in))
		})
	}
}
