package service

import (
	"fmt"
	"testing"

	"lexisnap/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServiceDB opens a fresh in-memory sqlite database with the full
// schema migrated. Each call gets its own database.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Word{},
		&model.WordMetadata{},
		&model.Review{},
		&model.ReviewLogEntry{},
		&model.DailyStat{},
	))
	return db
}

// seedWord inserts a word row directly and returns it.
func seedWord(t *testing.T, db *gorm.DB, userID uuid.UUID, lemma string) *model.Word {
	t.Helper()
	word := &model.Word{
		WordID: uuid.New(),
		UserID: userID,
		Lemma:  lemma,
	}
	require.NoError(t, db.Create(word).Error)
	return word
}
