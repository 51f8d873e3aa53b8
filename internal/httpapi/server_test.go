package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	server := NewServer(
		tokens,
		userRepo,
		service.NewAuthService(userRepo, tokens),
		service.NewUserService(userRepo),
		service.NewTaskService(taskRepo, categoryRepo),
		service.NewCategoryService(categoryRepo),
	)
	return server, db
}

// doJSON fires a request at the app and decodes the JSON response body
// into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded, raw
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func promoteToAdmin(t *testing.T, db *gorm.DB, username string) {
	t.Helper()
	require.NoError(t, db.Model(&model.User{}).Where("username = ?", username).Update("role", model.RoleAdmin).Error)
}

func TestRegisterAndConflict(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()

	status, body, raw := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "u1", "email": "u1@e.com", "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "u1", user["username"])
	// The password must never appear in any representation.
	assert.NotContains(t, string(raw), "password")

	status, body, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "u1", "email": "other@e.com", "password": "pw123456",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User with this name or email already exists", body["message"])
}

func TestRegisterValidationDetail(t *testing.T) {
	server, _ := newTestServer(t)

	status, body, _ := doJSON(t, server.App(), http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "u1", "email": "u1@e.com",
	})
	require.Equal(t, http.StatusBadRequest, status)
	fields := body["errors"].(map[string]any)
	assert.Contains(t, fields, "password")
}

func TestLogin(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	registerAndLogin(t, app, "u1")

	status, body, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "u1@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "u1@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()

	for _, path := range []string{"/api/users/me", "/api/tasks", "/api/categories"} {
		status, _, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/tasks", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminRoutesForbiddenForUsers(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	token := registerAndLogin(t, app, "u1")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/1"},
		{http.MethodDelete, "/api/users/1"},
		{http.MethodGet, "/api/tasks/admin/all"},
	} {
		status, body, _ := doJSON(t, app, route.method, route.path, token, nil)
		assert.Equal(t, http.StatusForbidden, status, route.path)
		assert.Equal(t, "Access forbidden", body["message"])
	}
}

func TestOwnershipScopingReturnsNotFound(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	status, task, _ := doJSON(t, app, http.MethodPost, "/api/tasks", aliceToken, map[string]any{
		"title": "write report",
	})
	require.Equal(t, http.StatusCreated, status)
	taskID := int(task["id"].(float64))

	// Bob must see alice's task as missing, never as forbidden.
	status, _, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), bobToken, map[string]any{"title": "hijacked"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// The owner still sees the original.
	status, task, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "write report", task["title"])
}

func TestCategoryConflictsPerUser(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	status, _, _ := doJSON(t, app, http.MethodPost, "/api/categories", aliceToken, map[string]any{"name": "Work"})
	require.Equal(t, http.StatusCreated, status)

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/categories", aliceToken, map[string]any{"name": "Work"})
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = doJSON(t, app, http.MethodPost, "/api/categories", bobToken, map[string]any{"name": "Work"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestCategoryDeleteDetachesTasks(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	token := registerAndLogin(t, app, "alice")

	status, category, _ := doJSON(t, app, http.MethodPost, "/api/categories", token, map[string]any{"name": "Work"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := int(category["id"].(float64))

	var taskIDs []int
	for _, title := range []string{"write report", "send email", "book meeting"} {
		status, task, _ := doJSON(t, app, http.MethodPost, "/api/tasks", token, map[string]any{
			"title": title, "category_id": categoryID,
		})
		require.Equal(t, http.StatusCreated, status)
		taskIDs = append(taskIDs, int(task["id"].(float64)))
	}

	status, body, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Category successfully deleted", body["message"])

	// The category is gone, the tasks remain with the reference cleared.
	status, _, raw := doJSON(t, app, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))

	for _, id := range taskIDs {
		status, task, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, task["category_id"])
	}
}

func TestTaskListFiltersAndSort(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	token := registerAndLogin(t, app, "alice")

	for _, spec := range []map[string]any{
		{"title": "banana", "priority": "high"},
		{"title": "apple", "priority": "low"},
		{"title": "cherry", "priority": "high", "status": "completed"},
	} {
		status, _, _ := doJSON(t, app, http.MethodPost, "/api/tasks", token, spec)
		require.Equal(t, http.StatusCreated, status)
	}

	var tasks []map[string]any
	_, _, raw := doJSON(t, app, http.MethodGet, "/api/tasks?priority=high&sortBy=title:asc", token, nil)
	require.NoError(t, json.Unmarshal(raw, &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "banana", tasks[0]["title"])
	assert.Equal(t, "cherry", tasks[1]["title"])

	_, _, raw = doJSON(t, app, http.MethodGet, "/api/tasks?status=completed", token, nil)
	require.NoError(t, json.Unmarshal(raw, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "cherry", tasks[0]["title"])

	status, _, _ := doJSON(t, app, http.MethodGet, "/api/tasks?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProfileUpdateAllowList(t *testing.T) {
	server, _ := newTestServer(t)
	app := server.App()
	token := registerAndLogin(t, app, "alice")

	// Attempts to change anything beyond the name fields are dropped.
	status, profile, _ := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]any{
		"first_name": "Alice",
		"last_name":  "Smith",
		"username":   "hacked",
		"role":       "admin",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alice", profile["first_name"])
	assert.Equal(t, "Smith", profile["last_name"])
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, "user", profile["role"])
}

func TestAdminOperations(t *testing.T) {
	server, db := newTestServer(t)
	app := server.App()
	adminToken := registerAndLogin(t, app, "root")
	promoteToAdmin(t, db, "root")
	aliceToken := registerAndLogin(t, app, "alice")

	status, task, _ := doJSON(t, app, http.MethodPost, "/api/tasks", aliceToken, map[string]any{"title": "write report"})
	require.Equal(t, http.StatusCreated, status)
	aliceTaskID := int(task["id"].(float64))

	// Admin sees everyone's tasks, including the owner's username but
	// never a password hash.
	var tasks []map[string]any
	status, _, raw := doJSON(t, app, http.MethodGet, "/api/tasks/admin/all", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &tasks))
	require.Len(t, tasks, 1)
	assert.NotContains(t, string(raw), "password")

	// Admin listing is read-only: mutating someone else's task still 404s.
	status, _, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/tasks/%d", aliceTaskID), adminToken, map[string]any{"title": "admin edit"})
	assert.Equal(t, http.StatusNotFound, status)

	var users []map[string]any
	status, _, raw = doJSON(t, app, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 2)

	// Deleting alice removes her task with her.
	var alice map[string]any
	for _, u := range users {
		if u["username"] == "alice" {
			alice = u
		}
	}
	require.NotNil(t, alice)
	aliceID := int(alice["id"].(float64))

	status, body, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", aliceID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User alice has been deleted", body["message"])

	status, _, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", aliceID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Alice's token no longer authenticates.
	status, _, _ = doJSON(t, app, http.MethodGet, "/api/users/me", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
