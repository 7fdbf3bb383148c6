package logging

import (
	"os"

	"ecommerce/internal/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup は標準ロガーを設定して返す（handlerは標準ロガーを使う）
func Setup(cfg config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parse LOG_LEVEL")
	}

	logger := log.StandardLogger()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	return logger, nil
}
