package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/scorekeeper-api/internal/domain/entity"
)

// newTestDB поднимает изолированную in-memory SQLite базу со схемой из сущностей.
// Postgres-специфичные вещи (get_player_statistics, коды 23505) здесь не проверяются.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Player{},
		&entity.Category{},
		&entity.Game{},
		&entity.Participant{},
		&entity.Score{},
	))
	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, name string) entity.Player {
	t.Helper()
	p := entity.Player{Name: name}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedGame(t *testing.T, db *gorm.DB, date time.Time, finalized bool) entity.Game {
	t.Helper()
	g := entity.Game{Date: date}
	require.NoError(t, db.Create(&g).Error)
	if finalized {
		require.NoError(t, db.Model(&g).Update("finalized", true).Error)
		g.Finalized = true
	}
	return g
}
