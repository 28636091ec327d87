package service

import (
	"context"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"microapi-go/constant"
	"microapi-go/internal/model"
	"microapi-go/internal/repository"
	"microapi-go/pkg/logging"
)

const flushBatchSize = 200

// RecordVisit 记录一次跳转：总访问量 INCR，当日访问量 HINCRBY
func RecordVisit(conn redis.Conn, code int64, at time.Time) {
	if conn == nil {
		return
	}

	totalKey := constant.GetTotalVisitsKey(code)
	if _, err := conn.Do("INCR", totalKey); err != nil {
		logging.Logger.Error("Failed to record total visits",
			zap.String("key", totalKey),
			zap.Int64("code", code),
			zap.Error(err))
	}

	dailyKey := constant.GetDailyVisitsKey(constant.GetDateKey(at))
	if _, err := conn.Do("HINCRBY", dailyKey, code, 1); err != nil {
		logging.Logger.Error("Failed to record daily visits",
			zap.String("key", dailyKey),
			zap.Int64("code", code),
			zap.Error(err))
		return
	}
	if _, err := conn.Do("EXPIRE", dailyKey, constant.DailyKeyTTL); err != nil {
		logging.Logger.Error("Failed to set daily visits expire",
			zap.String("key", dailyKey),
			zap.Error(err))
	}
}

// GetTotalVisits 获取短码的总访问量，不存在时为 0
func GetTotalVisits(conn redis.Conn, code int64) (int64, error) {
	n, err := redis.Int64(conn.Do("GET", constant.GetTotalVisitsKey(code)))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	return n, err
}

// GetDailyVisits 获取短码在某日（yyyyMMdd）的访问量，不存在时为 0
func GetDailyVisits(conn redis.Conn, code int64, date string) (int64, error) {
	n, err := redis.Int64(conn.Do("HGET", constant.GetDailyVisitsKey(date), code))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	return n, err
}

// FlushVisitStats 把 Redis 中的访问计数同步到数据库，由定时任务调用
func FlushVisitStats(ctx context.Context, now time.Time) error {
	conn := repository.RedisConn()
	if conn == nil {
		return nil
	}
	defer repository.CloseRedisConn(conn)

	logging.Logger.Info("FlushVisitStats start")

	// 昨天的计数也一并同步：上一次定时任务到零点之间的访问只能在次日补上。
	// upsert 写入的是绝对值，重复同步同一天不会重复累加
	days := []flushDay{newFlushDay(now.AddDate(0, 0, -1)), newFlushDay(now)}
	flushed := 0

	var batch []model.ShortURL
	res := repository.DB.WithContext(ctx).
		Order("id").
		FindInBatches(&batch, flushBatchSize, func(tx *gorm.DB, _ int) error {
			for _, link := range batch {
				if err := flushLinkStats(ctx, conn, link, days); err != nil {
					return err
				}
				flushed++
			}
			return nil
		})
	if res.Error != nil {
		logging.Logger.Error("FlushVisitStats failed", zap.Int("flushed", flushed), zap.Error(res.Error))
		return res.Error
	}

	logging.Logger.Info("FlushVisitStats end", zap.Int("flushed", flushed))
	return nil
}

// flushDay 同一天在 Redis（yyyyMMdd）与数据库（YYYY-MM-DD）中的两种表示
type flushDay struct {
	key  string
	date string
}

func newFlushDay(t time.Time) flushDay {
	return flushDay{key: constant.GetDateKey(t), date: t.Format("2006-01-02")}
}

func flushLinkStats(ctx context.Context, conn redis.Conn, link model.ShortURL, days []flushDay) error {
	total, err := GetTotalVisits(conn, link.Code)
	if err != nil {
		return err
	}

	// Redis 数据丢失时不回退数据库中的总量
	if total > link.Visits {
		err := repository.DB.WithContext(ctx).
			Model(&model.ShortURL{}).
			Where("id = ? AND visits < ?", link.ID, total).
			UpdateColumn("visits", total).Error
		if err != nil {
			logging.Logger.Error("Failed to update total visits",
				zap.Uint("id", link.ID),
				zap.Int64("visits", total),
				zap.Error(err))
			return err
		}
	}

	for _, day := range days {
		if err := flushDailyStat(ctx, conn, link, day); err != nil {
			return err
		}
	}
	return nil
}

func flushDailyStat(ctx context.Context, conn redis.Conn, link model.ShortURL, day flushDay) error {
	daily, err := GetDailyVisits(conn, link.Code, day.key)
	if err != nil {
		return err
	}
	if daily == 0 {
		return nil
	}

	stat := model.DailyStat{ShortURLID: link.ID, Date: day.date, Visits: daily}
	err = repository.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "short_url_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"visits", "updated_at"}),
	}).Create(&stat).Error
	if err != nil {
		logging.Logger.Error("Failed to upsert daily stat",
			zap.Uint("short_url_id", link.ID),
			zap.String("date", day.date),
			zap.Int64("code", link.Code),
			zap.Error(err))
		return err
	}
	return nil
}
