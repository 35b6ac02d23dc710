package postgres

import (
	"context"
	"testing"

	"social-service/internal/database"
	"social-service/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "hash"}
	if name != "" {
		user.Name = &name
	}
	created, err := NewUserRepository(db).FirstOrCreateByEmail(context.Background(), user)
	require.NoError(t, err)
	require.True(t, created)
	return user
}
