package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger      = zap.NewNop()                        // 全局 Logger 实例
	AtomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel) // 全局共享日志级别
)

// Options 日志配置
type Options struct {
	Level      string
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// OptionsFromConfig 从 viper 读取 log.* 配置并填充默认值
func OptionsFromConfig() Options {
	opts := Options{
		Level:      viper.GetString("log.level"),
		Path:       viper.GetString("log.path"),
		MaxSize:    viper.GetInt("log.max_size"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAge:     viper.GetInt("log.max_age"),
		Compress:   viper.GetBool("log.compress"),
	}

	if opts.Level == "" {
		opts.Level = "info"
	}
	if opts.Path == "" {
		opts.Path = "logs/microapi.log"
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 10 // MB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 5
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7 // 天
	}
	return opts
}

func InitLoggerFromConfig() {
	if err := Init(OptionsFromConfig()); err != nil {
		if _, writeErr := fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err); writeErr != nil {
			os.Exit(1)
		}
	}
}

// Init 构建控制台 + lumberjack 文件双输出的 Logger，并替换全局 logger
func Init(opts Options) error {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zap.InfoLevel
	}
	AtomicLevel = zap.NewAtomicLevelAt(level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("2006/01/02 - 15:04:05"))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(os.Stdout), AtomicLevel),
	}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), os.ModePerm); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), AtomicLevel))
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(Logger)

	Logger.Info("logger initialized",
		zap.String("level", level.String()),
		zap.String("path", opts.Path),
	)
	return nil
}
