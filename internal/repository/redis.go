package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"microapi-go/pkg/logging"
)

// RedisPool 为 nil 时表示未配置 Redis，缓存与访问统计被跳过
var RedisPool *redis.Pool

func NewRedisPool(addr, password string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			conn, err := redis.Dial("tcp", addr,
				redis.DialPassword(password),
				redis.DialConnectTimeout(3*time.Second),
			)
			if err != nil {
				logging.Logger.Error("Failed to connect Redis",
					zap.String("addr", addr),
					zap.Error(err),
				)
				return nil, err
			}

			logging.Logger.Debug("Redis connection established",
				zap.String("addr", addr),
				zap.Bool("auth", password != ""),
			)
			return conn, nil
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			if err != nil {
				logging.Logger.Warn("Redis connection health check failed",
					zap.String("addr", addr),
					zap.Error(err),
				)
			}
			return err
		},
	}
}

func InitRedis() {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		logging.Logger.Warn("redis.addr not set, cache and visit statistics disabled")
		return
	}
	RedisPool = NewRedisPool(addr, viper.GetString("redis.password"))
}

// RedisConn 从连接池获取连接；未配置 Redis 时返回 nil
func RedisConn() redis.Conn {
	if RedisPool == nil {
		return nil
	}
	return RedisPool.Get()
}

// CloseRedisConn 归还连接并记录关闭失败
func CloseRedisConn(conn redis.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		logging.Logger.Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("connection_type", "redis"),
		)
	}
}
