package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCategory(t *testing.T, db *gorm.DB, userID uint, name string) *model.Category {
	t.Helper()
	category := model.Category{UserID: userID, Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func seedTask(t *testing.T, db *gorm.DB, userID uint, title string, categoryID *uint) *model.Task {
	t.Helper()
	task := model.Task{
		UserID:     userID,
		CategoryID: categoryID,
		Title:      title,
		Status:     model.StatusPending,
		Priority:   model.PriorityMedium,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func ctx() context.Context {
	return context.Background()
}
