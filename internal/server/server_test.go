package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusnet/internal/config"
	"campusnet/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		Port:      "8390",
		JWTSecret: "test_secret",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

// signupUser registers a user and returns their token.
func signupUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     "Test " + username,
		"username": username,
		"password": "Str0ng!Passw0rd",
		"age":      21,
		"college":  "State",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok, "signup response must carry a token")
	return token
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestServer(t)

	token := signupUser(t, app, "alice")
	assert.NotEmpty(t, token)

	// Duplicate username is a conflict.
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     "Other Alice",
		"username": "alice",
		"password": "Str0ng!Passw0rd",
		"age":      23,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already taken", body["error"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "Str0ng!Passw0rd",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestSignupValidationReportsAllErrors(t *testing.T) {
	app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     "",
		"username": "ab",
		"password": "weak",
		"age":      -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "validation response must list every failed rule")
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestSignupDoesNotLeakPasswordHash(t *testing.T) {
	app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     "Alice",
		"username": "alice",
		"password": "Str0ng!Passw0rd",
		"age":      21,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "password must never be serialized")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := newTestServer(t)

	for _, path := range []string{"/api/feed", "/api/friends", "/api/notifications"} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/api/feed", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFriendLifecycle(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")
	bobToken := signupUser(t, app, "bob")

	// Alice adds bob: pending.
	resp, body := doJSON(t, app, http.MethodPost, "/api/friends/bob", aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Friend request sent", body["message"])

	// Repeating the same add is a conflict.
	resp, body = doJSON(t, app, http.MethodPost, "/api/friends/bob", aliceToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Friend already added", body["error"])

	// Not friends yet.
	resp, body = doJSON(t, app, http.MethodGet, "/api/friends", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	// Status reflects each side of the pending request.
	_, body = doJSON(t, app, http.MethodGet, "/api/friends/status/bob", aliceToken, nil)
	assert.Equal(t, "pending_outgoing", body["status"])
	_, body = doJSON(t, app, http.MethodGet, "/api/friends/status/alice", bobToken, nil)
	assert.Equal(t, "pending_incoming", body["status"])

	// Bob got notified.
	_, body = doJSON(t, app, http.MethodGet, "/api/notifications", bobToken, nil)
	notifs, ok := body["notifications"].([]interface{})
	require.True(t, ok)
	require.Len(t, notifs, 1)
	first := notifs[0].(map[string]interface{})
	assert.Equal(t, "alice added you as a friend", first["message"])

	// Bob adds back: accepted.
	resp, body = doJSON(t, app, http.MethodPost, "/api/friends/alice", bobToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Friend request accepted", body["message"])

	// Both sides now list each other.
	_, body = doJSON(t, app, http.MethodGet, "/api/friends", aliceToken, nil)
	assert.Equal(t, float64(1), body["count"])
	_, body = doJSON(t, app, http.MethodGet, "/api/friends", bobToken, nil)
	assert.Equal(t, float64(1), body["count"])

	// Alice got the acceptance notification.
	_, body = doJSON(t, app, http.MethodGet, "/api/notifications", aliceToken, nil)
	notifs = body["notifications"].([]interface{})
	require.Len(t, notifs, 1)
	first = notifs[0].(map[string]interface{})
	assert.Equal(t, "bob accepted your friend request", first["message"])

	// Any further add from either side conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/friends/alice", bobToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAddFriendEdgeCases(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/friends/alice", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "self-add")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/friends/ghost", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "unknown user")
}

func TestFeedVisibility(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")
	bobToken := signupUser(t, app, "bob")
	carolToken := signupUser(t, app, "carol")

	post := func(token, content string) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"content": content})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	post(aliceToken, "alice post")
	post(bobToken, "bob post")
	post(carolToken, "carol post")

	// Alice and bob become friends.
	doJSON(t, app, http.MethodPost, "/api/friends/bob", aliceToken, nil)
	doJSON(t, app, http.MethodPost, "/api/friends/alice", bobToken, nil)

	// Alice sees exactly her friends' posts: not her own, not carol's.
	resp, body := doJSON(t, app, http.MethodGet, "/api/feed", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	posts, ok := body["posts"].([]interface{})
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, "bob post", posts[0].(map[string]interface{})["content"])

	// Carol has no friends, so her feed is empty.
	_, body = doJSON(t, app, http.MethodGet, "/api/feed", carolToken, nil)
	posts = body["posts"].([]interface{})
	assert.Empty(t, posts)
}

func TestCreatePostValidation(t *testing.T) {
	app := newTestServer(t)
	token := signupUser(t, app, "alice")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfileVisibility(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")
	bobToken := signupUser(t, app, "bob")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", bobToken, map[string]string{"content": "bob secret post"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Stranger: profile loads but posts stay hidden.
	resp, body := doJSON(t, app, http.MethodGet, "/api/users/bob", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["posts_hidden"])
	_, hasPosts := body["posts"]
	assert.False(t, hasPosts)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/bob/posts", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// After friendship, posts are visible.
	doJSON(t, app, http.MethodPost, "/api/friends/bob", aliceToken, nil)
	doJSON(t, app, http.MethodPost, "/api/friends/alice", bobToken, nil)

	_, body = doJSON(t, app, http.MethodGet, "/api/users/bob", aliceToken, nil)
	posts, ok := body["posts"].([]interface{})
	require.True(t, ok)
	require.Len(t, posts, 1)

	// The friend list is part of the profile.
	friends, ok := body["friends"].([]interface{})
	require.True(t, ok)
	require.Len(t, friends, 1)
	assert.Equal(t, "alice", friends[0].(map[string]interface{})["username"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/bob/posts", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown profile.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/ghost", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchUsers(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")
	signupUser(t, app, "alicia")
	signupUser(t, app, "bob")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/search?username=ali", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 2)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/search", aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing query")
}

func TestNotificationMarkRead(t *testing.T) {
	app := newTestServer(t)
	aliceToken := signupUser(t, app, "alice")
	bobToken := signupUser(t, app, "bob")

	doJSON(t, app, http.MethodPost, "/api/friends/bob", aliceToken, nil)

	_, body := doJSON(t, app, http.MethodGet, "/api/notifications", bobToken, nil)
	notifs := body["notifications"].([]interface{})
	require.Len(t, notifs, 1)
	id := int(notifs[0].(map[string]interface{})["id"].(float64))

	_, body = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bobToken, nil)
	assert.Equal(t, float64(1), body["unread"])

	// Alice cannot ack bob's notification.
	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", id), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", id), bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", bobToken, nil)
	assert.Equal(t, float64(0), body["unread"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/notifications/abc/read", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMyProfile(t *testing.T) {
	app := newTestServer(t)
	token := signupUser(t, app, "alice")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", body["status"])

	// Redis is absent in tests, so readiness degrades without failing.
	resp, body = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "degraded", body["status"])
}
