package db

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zakat-manager/backend/config"
)

func TestAutoMigrate_CreatesServiceTables(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(gormDB))

	for _, table := range []string{"assets", "zakat_calculations", "metal_price_quotes", "zakat_payments"} {
		assert.True(t, gormDB.Migrator().HasTable(table), table)
	}
}

func TestNewRedisConnection(t *testing.T) {
	t.Run("connects and reports healthy", func(t *testing.T) {
		server := miniredis.RunT(t)

		conn, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0"})
		require.NoError(t, err)

		assert.True(t, conn.HealthCheck())
		require.NoError(t, conn.Close())
	})

	t.Run("rejects a malformed url", func(t *testing.T) {
		_, err := NewRedisConnection(&config.RedisConfig{URL: "not a url"})
		assert.Error(t, err)
	})

	t.Run("fails when the server is down", func(t *testing.T) {
		server := miniredis.RunT(t)
		addr := server.Addr()
		server.Close()

		_, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + addr})
		assert.Error(t, err)
	})
}
