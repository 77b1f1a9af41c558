package v1_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	v1 "github.com/dharani18p/task-management-Web-App/internal/api/v1"
	"github.com/dharani18p/task-management-Web-App/internal/api/v1/handlers"
	"github.com/dharani18p/task-management-Web-App/internal/cache"
	"github.com/dharani18p/task-management-Web-App/internal/middleware"
	"github.com/dharani18p/task-management-Web-App/internal/repository"
	"github.com/dharani18p/task-management-Web-App/internal/store"
	ws "github.com/dharani18p/task-management-Web-App/internal/websocket"
	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

var (
	testDB     *sql.DB
	testRedis  *redis.Client
	testHub    *ws.Hub
	testSecret = []byte("test-secret")
)

// TestMain runs the suite against disposable Postgres and Redis containers.
func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct docker pool: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to docker: %v", err)
	}
	pool.MaxWait = 120 * time.Second

	pgResource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=taskdb",
	})
	if err != nil {
		log.Fatalf("Could not start postgres: %v", err)
	}
	if err := pool.Retry(func() error {
		var err error
		testDB, err = sql.Open("postgres", fmt.Sprintf(
			"host=localhost port=%s user=postgres password=secret dbname=taskdb sslmode=disable",
			pgResource.GetPort("5432/tcp")))
		if err != nil {
			return err
		}
		return testDB.Ping()
	}); err != nil {
		log.Fatalf("Could not connect to postgres: %v", err)
	}

	redisResource, err := pool.Run("redis", "7-alpine", nil)
	if err != nil {
		log.Fatalf("Could not start redis: %v", err)
	}
	if err := pool.Retry(func() error {
		testRedis = redis.NewClient(&redis.Options{
			Addr: "localhost:" + redisResource.GetPort("6379/tcp"),
		})
		return testRedis.Ping(context.Background()).Err()
	}); err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}

	repository.CreateTableIfNotExists(testDB)

	testHub = ws.NewHub()
	go testHub.Run()

	code := m.Run()

	repository.DeleteAllTable(testDB)
	testDB.Close()
	testRedis.Close()
	if err := pool.Purge(pgResource); err != nil {
		log.Printf("Could not purge postgres: %v", err)
	}
	if err := pool.Purge(redisResource); err != nil {
		log.Printf("Could not purge redis: %v", err)
	}
	os.Exit(code)
}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	h := handlers.New(
		store.NewUserStore(testDB),
		store.NewTaskStore(testDB),
		cache.New(testRedis, 5*time.Minute),
		testHub,
		testSecret,
	)
	v1.RegisterRoutes(app, h, testSecret)
	return app
}

// doJSON sends a JSON request through the fiber app. A nil body sends no
// payload.
func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, mods ...func(*http.Request)) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, mod := range mods {
		mod(req)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// registerUser creates a fresh user with a unique email and returns it.
func registerUser(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	email := fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano())
	resp := doJSON(t, app, "POST", "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return email
}

// loginUser logs in and returns the session cookie and user id.
func loginUser(t *testing.T, app *fiber.App, email string) (*http.Cookie, int) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/users/login", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	require.True(t, sessionCookie.HttpOnly)

	result := decodeBody(t, resp)
	userID, ok := result["user_id"].(float64)
	require.True(t, ok, "login response must carry user_id")
	return sessionCookie, int(userID)
}

func withCookie(cookie *http.Cookie) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(cookie)
	}
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// createTask makes a task through the API and returns its id.
func createTask(t *testing.T, app *fiber.App, cookie *http.Cookie, fields map[string]string) int {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/tasks/", fields, withCookie(cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decodeBody(t, resp)
	taskID, ok := result["task_id"].(float64)
	require.True(t, ok, "create response must carry task_id")
	return int(taskID)
}
