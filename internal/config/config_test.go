package config_test

import (
	"testing"
	"time"

	"ecommerce/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "dev")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.IsProd())
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := config.Config{
		DBDriver:       "postgres",
		JWTSecret:      "s3cret",
		AccessTokenTTL: time.Minute,
		BcryptCost:     10,
	}
	require.NoError(t, base.Validate())

	prod := base
	prod.GoEnv = "prod"
	prod.JWTSecret = "dev_secret_change_me"
	assert.Error(t, prod.Validate())

	my := base
	my.DBDriver = "mysql"
	assert.Error(t, my.Validate())
	my.DatabaseURL = "user:pass@tcp(localhost:3306)/shop?parseTime=true"
	assert.NoError(t, my.Validate())

	cost := base
	cost.BcryptCost = 40
	assert.Error(t, cost.Validate())
}
