package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	_ "dispatch/docs"
	"dispatch/handlers"
	"dispatch/models"
	"dispatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCommand(t *testing.T) {
	old := utils.PasswordCost
	utils.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { utils.PasswordCost = old })

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"hash-password", "s3cret"})
	require.NoError(t, root.Execute())

	hash := strings.TrimSpace(out.String())
	assert.True(t, utils.IsPasswordHash(hash))
	assert.True(t, utils.ValidatePassword(hash, "s3cret"))
}

func TestHashPasswordRejectsBlank(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"hash-password", "  "})
	assert.Error(t, root.Execute())
}

func TestStatsTable(t *testing.T) {
	data := statsTable(models.DashboardStats{
		TotalIndents:      9,
		PendingProcessing: 2,
		ProcessedIndents:  7,
		PendingLoading:    3,
		LoadingCompleted:  4,
		PendingGatePass:   1,
		GatePassCompleted: 3,
	})
	require.Len(t, data, 5)
	assert.Equal(t, []string{"Loading point", "2", "7"}, data[1])
	assert.Equal(t, []string{"Gate pass", "1", "3"}, data[3])
	assert.Equal(t, "9", data[4][1])
}

func TestRouterServesHealthAndSwagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(handlers.API{}, []string{"http://localhost:5173"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/api/login"`)
	assert.Contains(t, w.Body.String(), "Dispatch API")
}

func TestCORSConfigAllowsDashboardOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(handlers.API{}, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, CORSConfig(nil).AllowHeaders, "X-Host-Name")
}

func TestRunJobSkipsWhileRunning(t *testing.T) {
	var (
		running int32
		calls   int32
	)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		runJob(&running, "slow", func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	runJob(&running, "slow", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	close(release)
	<-done
	assert.Zero(t, atomic.LoadInt32(&running))

	runJob(&running, "slow", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRunJobRecoversFromPanic(t *testing.T) {
	var running int32
	assert.NotPanics(t, func() {
		runJob(&running, "boom", func(context.Context) error { panic("boom") })
	})
	assert.Zero(t, atomic.LoadInt32(&running))

	ran := false
	runJob(&running, "boom", func(context.Context) error {
		ran = true
		return nil
	})
	assert.True(t, ran)
}
