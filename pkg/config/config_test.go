package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cadastro-clientes/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreMongoDB, cfg.Store.Driver)
	assert.Equal(t, "cadastro_clientes", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.TimeoutDuration())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MONGO_TIMEOUT_SECONDS", "3")
	t.Setenv("APP_NAME", "clientes-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Mongo.TimeoutDuration())
	assert.Equal(t, "clientes-test", cfg.App.Name)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "clientes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/clientes?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, config.AppConfig{Timezone: "Marte/Olympus"}.Location())
	assert.Equal(t, "UTC", config.AppConfig{Timezone: "UTC"}.Location().String())
}
