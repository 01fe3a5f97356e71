package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/database/migration"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	v1 "job-board/internal/delivery/http/routes/v1"
	"job-board/internal/pkg/password"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBBOARD_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBBOARD_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/helpers_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}
	return migDir
}

func newTestFiberApp(t *testing.T, db database.DB, limiter middleware.Limiter) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "JobBoard", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			Secret:    stringsOrDefault(os.Getenv("JOBBOARD_TEST_JWT_SECRET"), "test-secret"),
			ExpiresIn: time.Hour,
		},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 1000, ApplyPerMinute: 1000},
	}
	logger := log.New(io.Discard, "", 0)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	routes.NewRegistry(handler.NewHealthHandler(db, nil), v1.Deps{
		Config:  cfg,
		DB:      db,
		Limiter: limiter,
		Logger:  logger,
		Hasher:  password.NewHasher(bcrypt.MinCost),
	}).Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("%s %s: read body: %v", method, path, err)
	}
	var out semanticResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, string(raw), err)
		}
	}
	return res.StatusCode, out
}

func expectStatus(t *testing.T, app *fiber.App, want int, method, path, token string, body any) semanticResponse {
	t.Helper()
	got, res := doJSON(t, app, method, path, token, body)
	if got != want {
		t.Fatalf("%s %s: expected %d, got %d (%s)", method, path, want, got, res.Error)
	}
	return res
}

func decodeData(t *testing.T, res semanticResponse, out any) {
	t.Helper()
	if err := json.Unmarshal(res.Data, out); err != nil {
		t.Fatalf("decode data %s: %v", string(res.Data), err)
	}
}

type account struct {
	ID    uuid.UUID
	Token string
}

func signup(t *testing.T, app *fiber.App, role, email, company string) account {
	t.Helper()

	body := map[string]any{
		"email":     email,
		"password":  "password123",
		"firstName": strings.ToUpper(role[:1]) + role[1:],
		"lastName":  "Tester",
		"role":      role,
	}
	if company != "" {
		body["companyName"] = company
	}
	res := expectStatus(t, app, http.StatusCreated, http.MethodPost, "/api/v1/auth/signup", "", body)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	decodeData(t, res, &data)
	if data.Token == "" {
		t.Fatalf("signup %s: empty token", email)
	}
	return account{ID: data.User.ID, Token: data.Token}
}

func cleanupUsers(t *testing.T, db database.DB, ids ...uuid.UUID) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, id := range ids {
		if _, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
			t.Logf("cleanup user %s: %v", id, err)
		}
	}
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
