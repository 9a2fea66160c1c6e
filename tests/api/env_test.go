package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sajid-itinnovator/stock-analyzer/internal/app"
	"github.com/sajid-itinnovator/stock-analyzer/internal/clients/agent"
	"github.com/sajid-itinnovator/stock-analyzer/internal/clients/feeds"
	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/server"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage"
	testcommon "github.com/sajid-itinnovator/stock-analyzer/tests/common"
)

// Env is a running StockAI server backed by real storage.
type Env struct {
	App             *app.App
	Server          *httptest.Server
	CredentialsFile string
}

// newEnv starts a server. With a SurrealDB address the primary store is
// online, otherwise storage starts offline with a temp credential file.
func newEnv(t *testing.T, storageAddress, agentURL string) *Env {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Storage.Address = storageAddress
	config.Storage.Namespace = "stockai_api_test"
	config.Storage.Database = testDatabaseName(t)
	config.Storage.CredentialsFile = filepath.Join(t.TempDir(), "credentials.json")
	config.Agent.BaseURL = agentURL
	config.News.Feeds = []string{"http://127.0.0.1:1/feed"}

	logger := common.NewSilentLogger()
	storageManager := storage.NewStorageManager(logger, config)

	a := app.New(config, logger, storageManager,
		agent.NewClient(agentURL, agent.WithLogger(logger), agent.WithTimeout(5*time.Second)),
		feeds.NewClient(feeds.WithLogger(logger), feeds.WithTimeout(2*time.Second)),
	)
	srv := httptest.NewServer(server.NewServer(a).Handler())

	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})

	return &Env{App: a, Server: srv, CredentialsFile: config.Storage.CredentialsFile}
}

// newSurrealEnv starts a server against the shared SurrealDB test instance.
func newSurrealEnv(t *testing.T, agentURL string) *Env {
	t.Helper()
	db := testcommon.StartSurrealDB(t)
	env := newEnv(t, db.Address(), agentURL)
	require.True(t, env.App.Storage.Available(), "primary store should be online")
	return env
}

func testDatabaseName(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_", "-", "_").Replace(t.Name())
	return fmt.Sprintf("%s_%d", strings.ToLower(name), time.Now().UnixNano())
}

// Do sends a JSON request and returns status, headers and body.
func (e *Env) Do(t *testing.T, method, path string, body any) (int, http.Header, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}
