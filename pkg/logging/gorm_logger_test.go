package logging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestToGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, ToGormLogLevel(zapcore.DebugLevel))
	assert.Equal(t, logger.Warn, ToGormLogLevel(zapcore.InfoLevel))
	assert.Equal(t, logger.Error, ToGormLogLevel(zapcore.ErrorLevel))
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), logger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sql, fmt.Errorf("query: %w", gorm.ErrRecordNotFound))
	l.Trace(context.Background(), time.Now(), sql, gorm.ErrDuplicatedKey)
	assert.Zero(t, logs.Len())

	l.Trace(context.Background(), time.Now(), sql, errors.New("connection refused"))
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	l.Trace(context.Background(), time.Now(), sql, nil)

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "GORM SQL failed", entries[0].Message)
		assert.Equal(t, "GORM slow SQL", entries[1].Message)
	}
}

func TestInitWritesToFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev; zap.ReplaceGlobals(prev) })

	path := t.TempDir() + "/app.log"
	err := Init(Options{Level: "debug", Path: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, AtomicLevel.Level())

	Logger.Info("hello")
	_ = Logger.Sync()
	assert.FileExists(t, path)
}
