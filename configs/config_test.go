package configs

import (
	"testing"
	"time"

	"sabores/entity"
	"sabores/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_SOURCE", "PORT", "JWT_TTL", "CORS_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "sabores.db", cfg.DBSource)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_SOURCE", "postgres://sabores@localhost/sabores")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://sabores.example ,")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://sabores.example"}, cfg.CORSOrigins)

	assert.Empty(t, cfg.Warnings)

	t.Setenv("JWT_TTL", "forever")
	cfg = LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "JWT_TTL")
}

func TestSQLiteDSNParams(t *testing.T) {
	const tail = "_foreign_keys=on&_txlock=immediate&_busy_timeout=5000"
	assert.Equal(t, "sabores.db?"+tail, sqliteDSN("sabores.db"))
	assert.Equal(t, "file:x?mode=memory&"+tail, sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "x.db?_foreign_keys=off&_txlock=immediate&_busy_timeout=5000", sqliteDSN("x.db?_foreign_keys=off"))
	assert.Equal(t, "x.db?_txlock=deferred&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("x.db?_txlock=deferred"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestSeeds(t *testing.T) {
	database, err := Open("sqlite", "file:configs_seed?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, SetupDatabase(database))

	cfg := &Config{AdminEmail: "Admin@Sabores.test", AdminPassword: "admin123"}
	l := logger.Discard()
	require.NoError(t, SeedAdmin(database, cfg, l))
	require.NoError(t, SeedAdmin(database, cfg, l))
	require.NoError(t, SeedCategories(database, l))
	require.NoError(t, SeedCategories(database, l))

	var admins []entity.User
	require.NoError(t, database.Where("role = ?", entity.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@sabores.test", admins[0].Email)
	assert.True(t, admins[0].IsActive)

	var cats int64
	database.Model(&entity.Category{}).Count(&cats)
	assert.EqualValues(t, 3, cats)
}
