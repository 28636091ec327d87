package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"microapi-go/internal/model"
)

// NextSequence 原子地递增并返回序列的下一个值。
//
// 必须在调用方的事务中执行：UPDATE 会锁住序列行直到事务结束，
// 事务回滚时递增一并撤销，因此不会产生空洞。
func NextSequence(ctx context.Context, tx *gorm.DB, name string) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&model.Sequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return 0, fmt.Errorf("increment sequence %s: %w", name, translate(res.Error))
	}

	if res.RowsAffected == 0 {
		seq := model.Sequence{Name: name, Value: 1}
		if err := tx.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("create sequence %s: %w", name, translate(err))
		}
		return seq.Value, nil
	}

	var seq model.Sequence
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&seq).Error; err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", name, translate(err))
	}
	return seq.Value, nil
}

// SyncSequence 确保序列存在且不小于 floor
func SyncSequence(db *gorm.DB, name string, floor int64) error {
	seq := model.Sequence{}
	err := db.Where(model.Sequence{Name: name}).
		Attrs(model.Sequence{Value: floor}).
		FirstOrCreate(&seq).Error
	if err != nil {
		return fmt.Errorf("ensure sequence %s: %w", name, translate(err))
	}

	if seq.Value >= floor {
		return nil
	}
	err = db.Model(&model.Sequence{}).
		Where("name = ? AND value < ?", name, floor).
		UpdateColumn("value", floor).Error
	if err != nil {
		return fmt.Errorf("raise sequence %s to %d: %w", name, floor, translate(err))
	}
	return nil
}
