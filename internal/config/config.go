package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const devJWTSecret = "dev_secret_change_me"

// Configはアプリ全体の設定
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`      // サーバーポート
	GoEnv string `envconfig:"GO_ENV" default:"dev"`     // dev/prod
	FEURL string `envconfig:"FE_URL" default:"*"`       // フロントURL（CORS）
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DBDriver         string        `envconfig:"DB_DRIVER" default:"postgres"` // postgres/mysql
	DatabaseURL      string        `envconfig:"DATABASE_URL"`
	PostgresHost     string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int           `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string        `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string        `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string        `envconfig:"POSTGRES_DB" default:"ecommerce"`
	PostgresSSLMode  string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns     int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns     int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime  time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate      bool          `envconfig:"AUTO_MIGRATE" default:"true"`

	JWTSecret      string        `envconfig:"JWT_SECRET" default:"dev_secret_change_me"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	BcryptCost     int           `envconfig:"BCRYPT_COST" default:"12"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json/text
}

// Loadは.envと環境変数から読む
func Load() (Config, error) {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
	case "mysql":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for mysql")
		}
	default:
		return errors.Errorf("DB_DRIVER must be postgres or mysql: %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	//本番で開発用シークレットは使わない
	if c.IsProd() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in prod")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.Errorf("BCRYPT_COST out of range: %d", c.BcryptCost)
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// ":8080"形式
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
