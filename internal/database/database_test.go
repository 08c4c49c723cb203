package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"instafeed/internal/config"
	"instafeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConnect_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   config.DriverSQLite,
		SQLitePath: "file:connect_test?mode=memory&cache=shared",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	for _, m := range []any{&models.User{}, &models.Post{}, &models.Story{}, &models.Comment{}, &models.ExploreImage{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.Same(t, db, DB)
}

func TestDialector_UnsupportedDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)

	d, err := Dialector(&config.Config{DBDriver: config.DriverPostgres, DBHost: "db", DBName: "feed"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestCustomGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name     string
		level    logger.LogLevel
		elapsed  time.Duration
		err      error
		contains string
	}{
		{"query error", logger.Warn, 0, errors.New("syntax error"), "GORM query error"},
		{"record not found is ignored", logger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow query", logger.Warn, time.Second, nil, "GORM slow query"},
		{"silent", logger.Silent, time.Second, errors.New("x"), ""},
		{"info", logger.Info, 0, nil, "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewGormLogger(slog.New(slog.NewTextHandler(buf, nil))).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			if tt.contains == "" {
				assert.Zero(t, buf.Len())
			} else {
				assert.Contains(t, buf.String(), tt.contains)
			}
		})
	}
}
