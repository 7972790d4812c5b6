package integration

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/depot"
)

// TestReadOnlyMode ensures that read-only mode blocks every write over HTTP
// while seed files still populate the collections.
func TestReadOnlyMode(t *testing.T) {
	seeds := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seeds, "orders.yaml"), []byte("todo1:\n  task: frozen\n"), 0644))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	app, err := depot.New(depot.WithReadOnly(true), depot.WithSeedDir(seeds), depot.WithLogger(logger))
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v2/orders/todo1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	writes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/v2/orders", `{"task":"x"}`},
		{http.MethodPut, "/api/v2/orders/todo1", `{"task":"x"}`},
		{http.MethodPost, "/api/v2/users/uuid16-5", `{"name":"x","email":"x@example.com"}`},
		{http.MethodDelete, "/api/v2/goods/todo1", ""},
	}
	for _, w := range writes {
		req, err := http.NewRequest(w.method, srv.URL+w.path, strings.NewReader(w.body))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", w.method, w.path)
	}

	got, err := app.Orders().Get("todo1")
	require.NoError(t, err)
	assert.Equal(t, "frozen", got.Task)
	assert.Len(t, app.Goods().List(), 3)
}
