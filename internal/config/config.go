package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load 读取工作目录下的 config.yaml（可选），环境变量优先，例如 DB_DSN 覆盖 db.dsn
func Load(paths ...string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}

	viper.SetDefault("server.addr", ":3000")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "file:microapi.db?_busy_timeout=5000")
	viper.SetDefault("stats.cron", "*/10 * * * *")
	viper.SetDefault("i18n.default", "en")
	viper.SetDefault("log.level", "info")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// 兼容部署平台注入的 PORT，显式设置的 SERVER_ADDR 优先
	if _, ok := os.LookupEnv("SERVER_ADDR"); !ok {
		if port := viper.GetString("port"); port != "" {
			viper.Set("server.addr", ":"+port)
		}
	}
	return nil
}
