package repository

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"microapi-go/constant"
	"microapi-go/internal/model"
	"microapi-go/pkg/logging"
)

var DB *gorm.DB

// Open 按驱动名打开数据库，驱动错误统一翻译为 gorm.ErrDuplicatedKey 等哨兵错误
func Open(driver, dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return db, nil
}

func InitDB(l *zap.Logger, atomicLogLevel zap.AtomicLevel) {
	driver := viper.GetString("db.driver")
	dsn := viper.GetString("db.dsn")

	db, err := Open(driver, dsn, logging.NewGormLogger(l, logging.ToGormLogLevel(atomicLogLevel.Level())))
	if err != nil {
		l.Fatal("Failed to connect database", zap.String("driver", driver), zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		l.Fatal("Failed to migrate database", zap.Error(err))
	}

	DB = db
}

// Migrate 建表并把短码序列对齐到已有数据的最大短码
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.ShortURL{},
		&model.Sequence{},
		&model.DailyStat{},
		&model.ExerciseUser{},
		&model.Exercise{},
		&model.Book{},
		&model.BookComment{},
		&model.Issue{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return SyncShortCodeSequence(db)
}

// SyncShortCodeSequence 把短码序列抬升到已分配的最大短码
func SyncShortCodeSequence(db *gorm.DB) error {
	var maxCode int64
	if err := db.Model(&model.ShortURL{}).Select("COALESCE(MAX(code), 0)").Scan(&maxCode).Error; err != nil {
		return fmt.Errorf("read max short code: %w", err)
	}
	return SyncSequence(db, constant.ShortURLCodeSequence, maxCode)
}
