// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "threadcart",
		Password: "s3cret",
		Database: "catalog",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=threadcart password=s3cret dbname=catalog sslmode=require",
		d.DSN())
}

func TestValidateProductionGuards(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		JWT:         JWTConfig{SecretKey: "your-secret-key-change-in-production"},
		Database:    DatabaseConfig{Password: "s3cret"},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "rotated-secret"
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "s3cret"
	assert.NoError(t, cfg.Validate())

	dev := &Config{Environment: "development", JWT: JWTConfig{SecretKey: "your-secret-key-change-in-production"}}
	assert.NoError(t, dev.Validate())
}
