// Package testutil 为各包测试提供内存数据库与内存 Redis。
package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"microapi-go/internal/repository"
)

// SetupTestDB 打开独立的内存 SQLite 并替换 repository.DB，测试结束后恢复
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := repository.Open("sqlite", dsn, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// 内存库随最后一个连接关闭而销毁，单连接同时避免 SQLite 的表锁冲突
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prevDB, prevPool := repository.DB, repository.RedisPool
	repository.DB = db
	repository.RedisPool = nil
	t.Cleanup(func() {
		repository.DB = prevDB
		repository.RedisPool = prevPool
		_ = sqlDB.Close()
	})
	return db
}

// SetupTestRedis 启动 miniredis 并替换 repository.RedisPool
func SetupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	pool := &redis.Pool{
		MaxIdle:     2,
		IdleTimeout: time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", mr.Addr())
		},
	}

	prev := repository.RedisPool
	repository.RedisPool = pool
	t.Cleanup(func() {
		repository.RedisPool = prev
		_ = pool.Close()
	})
	return mr
}
