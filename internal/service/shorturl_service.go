package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"microapi-go/constant"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/dto"
	"microapi-go/internal/model"
	"microapi-go/internal/repository"
	"microapi-go/pkg/logging"
	"microapi-go/pkg/utils"
)

// 插入因唯一约束失败后最多重试的次数
const registerAttempts = 3

// RegisterShortURL 为地址分配短码；同一地址重复提交返回已有短码
func RegisterShortURL(ctx context.Context, candidate string) (*model.ShortURL, error) {
	if err := utils.ValidateTargetURL(candidate); err != nil {
		return nil, apperrors.InvalidInputError(apperrors.MsgInvalidURL)
	}

	var lastErr error
	for attempt := 1; attempt <= registerAttempts; attempt++ {
		existing, err := findShortURLByOriginal(ctx, candidate)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			logging.Logger.Error("查询短链失败", zap.String("original_url", candidate), zap.Error(err))
			return nil, apperrors.SystemError(err)
		}

		link, err := createShortURL(ctx, candidate)
		if err == nil {
			forgetCachedCode(link.Code)
			logging.Logger.Info("short url registered",
				zap.String("original_url", link.OriginalURL),
				zap.Int64("code", link.Code),
			)
			return link, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			logging.Logger.Error("创建短链失败", zap.String("original_url", candidate), zap.Error(err))
			return nil, apperrors.SystemError(err)
		}

		// 并发注册同一地址时失败方回退为查询；若冲突来自 code 则重新分配
		logging.Logger.Info("short url insert hit unique constraint, retrying",
			zap.String("original_url", candidate),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		lastErr = err

		if err := repository.SyncShortCodeSequence(repository.DB.WithContext(ctx)); err != nil {
			logging.Logger.Error("同步短码序列失败", zap.Error(err))
			return nil, apperrors.SystemError(err)
		}
	}

	return nil, apperrors.SystemError(fmt.Errorf("register %s after %d attempts: %w", candidate, registerAttempts, lastErr))
}

func findShortURLByOriginal(ctx context.Context, originalURL string) (*model.ShortURL, error) {
	return repository.FindOne[model.ShortURL](ctx, repository.DB, "url_hash = ?", model.HashURL(originalURL))
}

// createShortURL 在同一事务内递增短码序列并插入记录，失败时序列一并回滚
func createShortURL(ctx context.Context, originalURL string) (*model.ShortURL, error) {
	link := &model.ShortURL{OriginalURL: originalURL}

	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := repository.NextSequence(ctx, tx, constant.ShortURLCodeSequence)
		if err != nil {
			return err
		}
		link.Code = code
		return repository.Insert(ctx, tx, link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// ResolveShortURL 根据短码查找原始地址，优先读取 Redis 缓存，并记录一次访问
func ResolveShortURL(ctx context.Context, rawCode string) (*model.ShortURL, error) {
	code, err := utils.ParseShortCode(rawCode)
	if err != nil {
		return nil, apperrors.NotFoundError(apperrors.MsgShortURLNotFound)
	}

	conn := repository.RedisConn()
	defer repository.CloseRedisConn(conn)

	if originalURL, hit := cachedOriginalURL(conn, code); hit {
		if originalURL == "" {
			return nil, apperrors.NotFoundError(apperrors.MsgShortURLNotFound)
		}
		RecordVisit(conn, code, time.Now())
		return &model.ShortURL{OriginalURL: originalURL, Code: code}, nil
	}

	link, err := repository.FindOne[model.ShortURL](ctx, repository.DB, "code = ?", code)
	if errors.Is(err, repository.ErrNotFound) {
		cacheOriginalURL(conn, code, "", constant.CacheMissTTL)
		return nil, apperrors.NotFoundError(apperrors.MsgShortURLNotFound)
	}
	if err != nil {
		logging.Logger.Error("查询短链失败", zap.Int64("code", code), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}

	cacheOriginalURL(conn, code, link.OriginalURL, constant.CacheHitTTL)
	RecordVisit(conn, code, time.Now())
	return link, nil
}

// GetShortURLStats 返回短链的访问统计，总访问量优先使用 Redis 中的实时值
func GetShortURLStats(ctx context.Context, rawCode string) (*dto.ShortURLStatsResponse, error) {
	code, err := utils.ParseShortCode(rawCode)
	if err != nil {
		return nil, apperrors.NotFoundError(apperrors.MsgShortURLNotFound)
	}

	link, err := repository.FindOne[model.ShortURL](ctx, repository.DB, "code = ?", code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFoundError(apperrors.MsgShortURLNotFound)
	}
	if err != nil {
		return nil, apperrors.SystemError(err)
	}

	daily, err := repository.Find[model.DailyStat](ctx, repository.DB,
		map[string]any{"short_url_id": link.ID}, "date DESC")
	if err != nil {
		return nil, apperrors.SystemError(err)
	}

	resp := &dto.ShortURLStatsResponse{
		OriginalURL: link.OriginalURL,
		ShortURL:    link.Code,
		Visits:      link.Visits,
		Daily:       make([]dto.DailyVisits, 0, len(daily)+1),
	}
	for _, d := range daily {
		resp.Daily = append(resp.Daily, dto.DailyVisits{Date: d.Date, Visits: d.Visits})
	}

	if conn := repository.RedisConn(); conn != nil {
		mergeLiveVisits(conn, resp, time.Now())
		repository.CloseRedisConn(conn)
	}
	return resp, nil
}

// mergeLiveVisits 用 Redis 中尚未同步的总量与当天计数覆盖数据库中较旧的值
func mergeLiveVisits(conn redis.Conn, resp *dto.ShortURLStatsResponse, now time.Time) {
	if live, err := GetTotalVisits(conn, resp.ShortURL); err == nil && live > resp.Visits {
		resp.Visits = live
	}

	today, err := GetDailyVisits(conn, resp.ShortURL, constant.GetDateKey(now))
	if err != nil || today == 0 {
		return
	}

	date := now.Format("2006-01-02")
	for i := range resp.Daily {
		if resp.Daily[i].Date == date {
			resp.Daily[i].Visits = max(resp.Daily[i].Visits, today)
			return
		}
	}
	// daily 按日期倒序，今天排在最前
	resp.Daily = append([]dto.DailyVisits{{Date: date, Visits: today}}, resp.Daily...)
}

// cachedOriginalURL 返回缓存值以及是否命中；空字符串表示缓存的"不存在"
func cachedOriginalURL(conn redis.Conn, code int64) (string, bool) {
	if conn == nil {
		return "", false
	}

	cacheKey := constant.GetShortCodeKey(code)
	value, err := redis.String(conn.Do("GET", cacheKey))
	if err == nil {
		return value, true
	}
	if !errors.Is(err, redis.ErrNil) {
		logging.Logger.Warn("Error getting from Redis",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
	return "", false
}

func cacheOriginalURL(conn redis.Conn, code int64, originalURL string, ttl int) {
	if conn == nil {
		return
	}

	cacheKey := constant.GetShortCodeKey(code)
	if _, err := conn.Do("SET", cacheKey, originalURL, "EX", ttl); err != nil {
		logging.Logger.Error("设置缓存失败",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
	}
}

// forgetCachedCode 删除新分配短码可能残留的空值缓存
func forgetCachedCode(code int64) {
	conn := repository.RedisConn()
	if conn == nil {
		return
	}
	defer repository.CloseRedisConn(conn)

	cacheKey := constant.GetShortCodeKey(code)
	if _, err := conn.Do("DEL", cacheKey); err != nil {
		logging.Logger.Warn("Redis 删除缓存失败",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
	}
}
