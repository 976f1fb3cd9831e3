package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieValue(resp *http.Response, name string) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func postWithRefresh(t *testing.T, app *TestApp, path, refreshToken string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, app.Server.URL+path, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// 1. Callback with valid credential
	form := url.Values{}
	form.Add("credential", "valid_token")

	app.Client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := app.Client.PostForm(app.Server.URL+"/oauth/callback", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	location, err := resp.Location()
	require.NoError(t, err)
	assert.Equal(t, redirectURL, location.String())

	accessToken := cookieValue(resp, "access_token")
	refreshToken := cookieValue(resp, "refresh_token")
	assert.NotEmpty(t, accessToken, "access_token cookie should be set")
	assert.NotEmpty(t, refreshToken, "refresh_token cookie should be set")

	// 2. Refresh; iat has second precision
	time.Sleep(1200 * time.Millisecond)

	resp = postWithRefresh(t, app, "/auth/refresh", refreshToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	newAccessToken := cookieValue(resp, "access_token")
	assert.NotEmpty(t, newAccessToken, "new access_token should be returned")
	assert.NotEqual(t, accessToken, newAccessToken)

	// 3. Logout revokes the refresh token
	resp = postWithRefresh(t, app, "/auth/logout", refreshToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postWithRefresh(t, app, "/auth/refresh", refreshToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthFlow_Invalid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	form := url.Values{}
	form.Add("credential", "bad_token")

	resp, err := app.Client.PostForm(app.Server.URL+"/oauth/callback", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postWithRefresh(t, app, "/auth/refresh", "garbage")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	register := map[string]interface{}{
		"first_name": "Ana",
		"last_name":  "Souza",
		"email":      "ana@example.com",
		"password":   "correct horse",
		"is_patient": true,
	}
	body, _ := json.Marshal(register)

	resp, err := app.Client.Post(app.Server.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "ana@example.com", created["email"])
	assert.NotContains(t, created, "password_hash")

	resp, err = app.Client.Post(app.Server.URL+"/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	login, _ := json.Marshal(map[string]string{"email": "ana@example.com", "password": "wrong password"})
	resp, err = app.Client.Post(app.Server.URL+"/auth/login", "application/json", bytes.NewReader(login))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login, _ = json.Marshal(map[string]string{"email": "ana@example.com", "password": "correct horse"})
	resp, err = app.Client.Post(app.Server.URL+"/auth/login", "application/json", bytes.NewReader(login))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, cookieValue(resp, "access_token"))
}
