package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/router"
	"github.com/petroapi-dev/petroapi/internal/types"
	"github.com/petroapi-dev/petroapi/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture bundles the assembled router with its backing database for tests
// that assert on persisted state directly.
type fixture struct {
	Engine *gin.Engine
	DB     *gorm.DB
}

// newTestServer assembles the full router over a fresh in-memory database
// with the bootstrap admin seeded.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.OpenDB(t)
	tokens := testutil.NewTokenService(t)

	return router.New(gdb, tokens), gdb
}

// login exchanges credentials for a bearer token via POST /token.
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed for %s: %s", username, w.Body.String())

	var body types.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)

	return body.AccessToken
}

// do performs a JSON request with an optional bearer token.
func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// Convenience builders driving the public API, so fixtures exercise the same
// paths the assertions do.

func createProject(t *testing.T, r *gin.Engine, token, name string) types.ProjectResponse {
	t.Helper()

	w := do(t, r, http.MethodPost, "/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "create project: %s", w.Body.String())

	var project types.ProjectResponse
	decode(t, w, &project)
	return project
}

func createSample(t *testing.T, r *gin.Engine, token string, projectID uint, name string) types.SampleResponse {
	t.Helper()

	path := fmt.Sprintf("/samples/%d", projectID)
	w := do(t, r, http.MethodPost, path, token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "create sample: %s", w.Body.String())

	var sample types.SampleResponse
	decode(t, w, &sample)
	return sample
}

func createProfile(t *testing.T, r *gin.Engine, token string, projectID, sampleID uint, label, mineral string) types.ProfileResponse {
	t.Helper()

	path := fmt.Sprintf("/profile/%d/%d", projectID, sampleID)
	w := do(t, r, http.MethodPost, path, token, gin.H{"label": label, "mineral": mineral})
	require.Equal(t, http.StatusCreated, w.Code, "create profile: %s", w.Body.String())

	var profile types.ProfileResponse
	decode(t, w, &profile)
	return profile
}
