package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupJira は /rest/api/3/field を返す偽のJIRAを起動し、接続用の環境変数を設定します
func setupJira(t *testing.T, status int, body string) *atomic.Int32 {
	t.Helper()

	requests := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/rest/api/3/field", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("JIRA_DOMAIN", srv.URL)
	t.Setenv("JIRA_EMAIL", "ops@example.com")
	t.Setenv("JIRA_API_TOKEN", "secret")
	t.Setenv("LOG_LEVEL", "")
	return requests
}

func TestRun_PrintsFields(t *testing.T) {
	setupJira(t, http.StatusOK, `[{"id":"customfield_10040","name":"Launch Date"}]`)

	var stdout bytes.Buffer
	code := run(nil, &stdout)

	assert.Equal(t, 0, code)
	assert.Equal(t, "ID: customfield_10040, Name: Launch Date\n", stdout.String())
}

func TestRun_DoesNotNeedProjectKey(t *testing.T) {
	setupJira(t, http.StatusOK, `[]`)
	t.Setenv("PROJECT_KEY", "")

	var stdout bytes.Buffer
	assert.Equal(t, 0, run(nil, &stdout))
	assert.Empty(t, stdout.String())
}

func TestRun_NotFound(t *testing.T) {
	requests := setupJira(t, http.StatusNotFound, "Not Found")

	var stdout bytes.Buffer
	code := run(nil, &stdout)

	assert.Equal(t, 1, code)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, "Error 404: Not Found\n", stdout.String())
}

func TestRun_MissingToken(t *testing.T) {
	requests := setupJira(t, http.StatusOK, `[]`)
	t.Setenv("JIRA_API_TOKEN", "")

	var stdout bytes.Buffer
	code := run(nil, &stdout)

	assert.Equal(t, 1, code)
	assert.Equal(t, int32(0), requests.Load())
	assert.Empty(t, stdout.String())
}

func TestRun_MalformedJSON(t *testing.T) {
	setupJira(t, http.StatusOK, `[{"id":`)

	var stdout bytes.Buffer
	assert.Equal(t, 1, run(nil, &stdout))
	assert.Empty(t, stdout.String())
}
