package db

import (
	"fmt"

	"ecommerce/internal/config"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		// 一意制約違反をgorm.ErrDuplicatedKeyに
		TranslateError: true,
		Logger:         logger.Default.LogMode(gormLogLevel(cfg)),
	}

	gormDB, err := gorm.Open(dialector(cfg), gcfg)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return gormDB, nil
}

func dialector(cfg config.Config) gorm.Dialector {
	if cfg.DBDriver == "mysql" {
		return mysql.Open(cfg.DatabaseURL)
	}

	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL)
	}
	return postgres.Open(PostgresDSN(cfg))
}

func PostgresDSN(cfg config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}

func gormLogLevel(cfg config.Config) logger.LogLevel {
	if cfg.Debug {
		return logger.Info
	}
	return logger.Warn
}

// Migrate はテーブルを作成/更新する
func Migrate(gormDB *gorm.DB, models ...interface{}) error {
	return errors.Wrap(gormDB.AutoMigrate(models...), "auto migrate")
}
