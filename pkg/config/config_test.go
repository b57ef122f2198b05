package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 0.19, cfg.Sales.IVARate)
	assert.Equal(t, "*", cfg.HTTP.CORSOrigin)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("JWT_ALGORITHM", "hs512")
	v.Set("HTTP_PORT", "9090")
	v.Set("SALES_IVA_RATE", "0.05")
	v.Set("URL_FRONT", "https://app.example.com")
	v.Set("DB_MAX_CONNS", "10")
	v.Set("DB_FORCE_IPV4", "false")

	cfg := fromViper(v)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 0.05, cfg.Sales.IVARate)
	assert.Equal(t, "https://app.example.com", cfg.HTTP.CORSOrigin)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWT.Secret = "s"
	assert.NoError(t, cfg.Validate())

	cfg.DB.MinConns = cfg.DB.MaxConns + 1
	assert.ErrorContains(t, cfg.Validate(), "DB_MAX_CONNS")
	cfg.DB.MinConns = 0

	cfg.JWT.Algorithm = "RS256"
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/n?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
