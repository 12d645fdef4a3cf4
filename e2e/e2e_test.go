//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"scorekeeper/internal/app"
	"scorekeeper/internal/config"
	"scorekeeper/internal/db"
	"scorekeeper/internal/testutil"
	"scorekeeper/internal/transport/httpserver"
	"scorekeeper/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	gen    *testutil.DataGenerator
}

// setupE2E runs against E2E_DB_DSN when set, otherwise against a throwaway
// Postgres container.
func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		dsn = startPostgres(t)
	}

	cfg := config.Default()
	cfg.DB.DSN = dsn
	cfg.Auth.JWTSecret = "e2e-secret"
	cfg.RateLimit.LoginBurst = 100

	log := logger.NewNop()
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(dbConn) })

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	server := httptest.NewServer(httpserver.NewRouter(cfg, app.NewHandlers(cfg, dbConn, log), log))
	t.Cleanup(server.Close)

	return &testEnv{server: server, db: dbConn, gen: testutil.NewDataGenerator()}
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("scorekeeper"),
		postgres.WithUsername("scorekeeper"),
		postgres.WithPassword("scorekeeper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		if container != nil {
			_ = container.Terminate(ctx)
		}
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	return dsn
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE scores, score_cards, holes, layouts, courses, locations, users RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestE2EPlayerRecordsARound(t *testing.T) {
	env := setupE2E(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}
	base := env.server.URL + "/api"

	resp, body := requestJSON(t, client, http.MethodPost, base+"/course", env.gen.Course())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var course struct {
		Course struct {
			ID uint `json:"id"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(body, &course))

	resp, body = requestJSON(t, client, http.MethodPost, fmt.Sprintf("%s/courses/%d/layout", base, course.Course.ID), env.gen.Layout(9))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var layout struct {
		Layout struct {
			ID uint `json:"id"`
		} `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(body, &layout))

	player := env.gen.User()
	resp, body = requestJSON(t, client, http.MethodPost, base+"/user", player)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var user struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &user))

	resp, body = requestJSON(t, client, http.MethodGet, base+"/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "register leaves a session cookie")
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"username":%q}`, user.User.ID, player.Username), string(body))

	card := env.gen.ScoreCard(layout.Layout.ID, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	resp, body = requestJSON(t, client, http.MethodPost, fmt.Sprintf("%s/users/%d/score", base, user.User.ID), card)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = requestJSON(t, client, http.MethodPut, fmt.Sprintf("%s/courses/%d/layouts/%d", base, course.Course.ID, layout.Layout.ID), env.gen.Layout(9))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var dangling int64
	require.NoError(t, env.db.Table("scores").Where("hole_id IS NULL").Count(&dangling).Error)
	assert.Equal(t, int64(9), dangling, "scores lose their hole reference when the layout is replaced")

	resp, _ = requestJSON(t, client, http.MethodPost, base+"/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = requestJSON(t, client, http.MethodGet, base+"/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = requestJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/courses/%d", base, course.Course.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = requestJSON(t, client, http.MethodGet, fmt.Sprintf("%s/users/%d/scores", base, user.User.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"scoreCards":[]}`, string(body), "deleting a course removes its score cards")
}

func TestE2EConcurrentDuplicateCourses(t *testing.T) {
	env := setupE2E(t)
	client := &http.Client{Timeout: 10 * time.Second}
	payload := env.gen.Course()

	const attempts = 8
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, _ := json.Marshal(payload)
			resp, err := client.Post(env.server.URL+"/api/course", "application/json", bytes.NewReader(data))
			if err != nil {
				return
			}
			_ = resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}
