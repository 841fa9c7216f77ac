package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/clarifyai-api/internal/models"
)

func TestConnectRedisDisabledWithoutURL(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestConnectRedisPings(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	value, err := server.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", value)
}

func TestConnectRedisRejectsBadURL(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "not a url")
	require.Error(t, err)
}

func TestConnectPostgresRequiresDSN(t *testing.T) {
	_, err := ConnectPostgres("")
	require.Error(t, err)
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:automigrate?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	for _, model := range []interface{}{&models.FAQ{}, &models.Announcement{}, &models.ChatLog{}} {
		require.True(t, db.Migrator().HasTable(model))
	}
}
