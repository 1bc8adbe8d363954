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

var _ gormlogger.Interface = (*GormLogger)(nil)

func observedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func selectPayments() (string, int64) {
	return "SELECT * FROM payments WHERE tenant_id = $1", 3
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := observedGormLogger(gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreNotFoundErrs)
}

func TestGormLogger_LogModeClones(t *testing.T) {
	gl, _ := observedGormLogger(gormlogger.Info)

	clone, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.level)
	assert.Equal(t, gormlogger.Info, gl.level, "original must keep its level")
}

func TestGormLogger_LevelGating(t *testing.T) {
	gl, recorded := observedGormLogger(gormlogger.Silent)
	gl.Info(context.Background(), "opening %s", "connection")
	gl.Warn(context.Background(), "suppressed")
	gl.Error(context.Background(), "suppressed")
	assert.Empty(t, recorded.All())

	gl, recorded = observedGormLogger(gormlogger.Info)
	gl.Info(context.Background(), "opening %s", "connection")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "opening connection", logs[0].Message)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed query logs at error", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), selectPayments, errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("record not found is suppressed by default", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), selectPayments, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("record not found surfaces when not ignored", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(context.Background(), time.Now(), selectPayments, gormlogger.ErrRecordNotFound)
		require.Len(t, recorded.All(), 1)
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), selectPayments, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("normal query logs at debug", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), selectPayments, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
		fields := logs[0].ContextMap()
		assert.Equal(t, int64(3), fields["rows"])
		assert.Contains(t, fields["sql"], "FROM payments")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), selectPayments, nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
		gl.Trace(ctx, time.Now(), selectPayments, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-42", logs[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
