package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "writer@example.com",
		"password": "s3cret-pass",
		"name":     "Writer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["access_token"])
	user := data["user"].(map[string]any)
	assert.Equal(t, "writer@example.com", user["email"])

	cookie := findCookie(w, "refresh_token")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/auth/refresh", cookie.Path)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "taken@example.com", "pass-123")

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "taken@example.com",
		"password": "another-pass",
		"name":     "Other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, "writer@example.com", "s3cret-pass")

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "writer@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	access := data["access_token"].(string)
	require.NotEmpty(t, access)

	// 返回的 AccessToken 能直接访问业务接口
	w = env.do(t, http.MethodGet, "/api/users/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.ID, decodeData(t, w)["id"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "writer@example.com", "s3cret-pass")

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "writer@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	// 未注册与密码错误返回同一响应
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, "writer@example.com", "s3cret-pass")

	loginResp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "writer@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, loginResp.Code)
	cookie := findCookie(loginResp, "refresh_token")
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	access := decodeData(t, w)["access_token"].(string)
	require.NotEmpty(t, access)

	me := env.do(t, http.MethodGet, "/api/users/me", access, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, u.ID, decodeData(t, me)["id"])
}

func TestRefreshWithoutCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	access := env.tokenFor(t, newTestUUID(1))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: access})
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := findCookie(w, "refresh_token")
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	u := env.seedUser(t, "writer@example.com", "s3cret-pass")
	token := env.tokenFor(t, u.ID)

	w := env.do(t, http.MethodPut, "/api/users/me", token, map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decodeData(t, w)["name"])
}
