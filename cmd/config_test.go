package cmd_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"meatdelivery/cmd"
	"meatdelivery/internal/adapters/out/postgres/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	config, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, cmd.DBDriverPostgres, config.DBDriver)
	assert.Equal(t, cmd.BusDriverMemory, config.BusDriver)
	assert.Equal(t, 1024, config.DispatchQueueSize)
	assert.Equal(t, time.Minute, config.BroadcastStaleAfter)
	assert.Equal(t, "Local Meat Shop", config.ShopName)
	assert.InDelta(t, 28.7041, config.ShopLatitude, 1e-9)
}

func TestLoadConfigFromDotenv(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("JWT_SECRET=from-file\nBUS_DRIVER=redis\nBROADCAST_STALE_AFTER=90s\n"), 0o600))
	for _, key := range []string{"JWT_SECRET", "BUS_DRIVER", "BROADCAST_STALE_AFTER"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	// godotenv never overrides variables that are already set.
	t.Setenv("HTTP_PORT", "9090")

	config, err := cmd.LoadConfig(file)

	require.NoError(t, err)
	assert.Equal(t, "from-file", config.JWTSecret)
	assert.Equal(t, cmd.BusDriverRedis, config.BusDriver)
	assert.Equal(t, 90*time.Second, config.BroadcastStaleAfter)
	assert.Equal(t, "9090", config.HTTPPort)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("secret required", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		assert.Error(t, err)
	})

	t.Run("unknown drivers", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_DRIVER", "mysql")
		t.Setenv("BUS_DRIVER", "kafka")

		_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DRIVER")
		assert.Contains(t, err.Error(), "BUS_DRIVER")
	})
}

func TestPostgresDSN(t *testing.T) {
	config := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", config.PostgresDSN())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := cmd.NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = cmd.NewLogger(&buf, "loud", "json")
	assert.Error(t, err)
	_, err = cmd.NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestCompositionRoot(t *testing.T) {
	var buf bytes.Buffer
	logger, err := cmd.NewLogger(&buf, "error", "text")
	require.NoError(t, err)

	config := cmd.Config{
		JWTSecret:         "secret",
		BusDriver:         cmd.BusDriverMemory,
		DispatchQueueSize: 16,
		ShopName:          "Local Meat Shop",
		ShopLongitude:     77.1025,
		ShopLatitude:      28.7041,
		BroadcastCron:     "*/30 * * * * *",
	}
	app, err := cmd.NewCompositionRoot(t.Context(), config, logger, dbtest.SQLite(t))
	require.NoError(t, err)

	e, err := app.NewHTTPServer()
	require.NoError(t, err)

	for path, want := range map[string]int{
		"/api/health": http.StatusOK,
		"/api/orders": http.StatusUnauthorized,
		"/metrics":    http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}

	manager, err := app.NewJobManager()
	require.NoError(t, err)
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.NoError(t, app.RunRelay(t.Context()))
}

func TestCompositionRootRejectsInvalidShop(t *testing.T) {
	var buf bytes.Buffer
	logger, err := cmd.NewLogger(&buf, "error", "text")
	require.NoError(t, err)

	_, err = cmd.NewCompositionRoot(t.Context(), cmd.Config{ShopLatitude: 120, DispatchQueueSize: 1}, logger, dbtest.SQLite(t))

	assert.Error(t, err)
}
