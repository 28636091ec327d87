package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// translate 把 gorm 的哨兵错误映射为仓储层错误，保留原始错误链
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

// FindOne 返回第一条满足条件的记录
func FindOne[T any](ctx context.Context, db *gorm.DB, query any, args ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// FindByID 按主键查询，preloads 为需要预加载的关联
func FindByID[T any](ctx context.Context, db *gorm.DB, id any, preloads ...string) (*T, error) {
	tx := db.WithContext(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}

	var out T
	if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// Find 查询满足条件的全部记录；conds 为 nil 时返回全表
func Find[T any](ctx context.Context, db *gorm.DB, conds map[string]any, order string) ([]T, error) {
	tx := db.WithContext(ctx)
	if len(conds) > 0 {
		tx = tx.Where(conds)
	}
	if order != "" {
		tx = tx.Order(order)
	}

	out := make([]T, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func Insert[T any](ctx context.Context, db *gorm.DB, record *T) error {
	return translate(db.WithContext(ctx).Create(record).Error)
}

// UpdateByID 按主键更新指定列，记录不存在时返回 ErrNotFound
func UpdateByID[T any](ctx context.Context, db *gorm.DB, id any, updates map[string]any) error {
	res := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL 对未变化的行返回 0，需要再确认记录是否存在
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID 按主键删除，记录不存在时返回 ErrNotFound
func DeleteByID[T any](ctx context.Context, db *gorm.DB, id any) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany 删除满足条件的记录；query 为 nil 时删除全表
func DeleteMany[T any](ctx context.Context, db *gorm.DB, query any, args ...any) (int64, error) {
	if query == nil {
		query = "1 = 1"
	}
	res := db.WithContext(ctx).Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}
