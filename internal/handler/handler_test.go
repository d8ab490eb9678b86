//go:build integration

package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rameshkumar-V/Tamilmani/internal/admin"
	"github.com/Rameshkumar-V/Tamilmani/internal/auth"
	"github.com/Rameshkumar-V/Tamilmani/internal/config"
	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/service"
	"github.com/Rameshkumar-V/Tamilmani/internal/view"
	"github.com/Rameshkumar-V/Tamilmani/web"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// testCredentials are seeded into every test application.
const (
	testUsername = "tm"
	testPassword = "1234"
)

// testApp wires the full application against a shared-cache in-memory SQLite
// database and exposes the repositories for seeding and assertions.
type testApp struct {
	server     *httptest.Server
	documents  *data.DocumentRepository
	categories *data.CategoryRepository
	contacts   *data.ContactRepository
	pageInfo   *data.PageInfoRepository
	abouts     *data.ProfileAboutRepository
	users      *data.UserRepository
	uploadDir  string
}

// newTestApp builds the application stack the way cmd/server does, backed by
// a named in-memory database. The name must be unique per test so parallel
// tests do not share state; the shared cache lets the Casbin adapter open its
// own connection to the same database.
func newTestApp(t *testing.T, name string) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	for _, file := range []string{"0001_initial_schema.up.sql", "0002_auth_tables.up.sql"} {
		schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", file))
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", file, err)
		}
		if _, err := db.Exec(string(schema)); err != nil {
			t.Fatalf("Failed to apply migration %s: %v", file, err)
		}
	}

	log := logger.New(config.LogConfig{Level: "error", Format: "console"}, io.Discard)

	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		t.Fatalf("Failed to initialize views: %v", err)
	}

	enforcer, err := auth.NewEnforcer("sqlite3", dsn, filepath.Join("..", "..", "auth_model.conf"))
	if err != nil {
		t.Fatalf("Failed to initialize enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, log)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)

	documentRepository := data.NewDocumentRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	contactRepository := data.NewContactRepository(db)
	pageInfoRepository := data.NewPageInfoRepository(db)
	contactInfoRepository := data.NewContactInfoRepository(db)
	profileAboutRepository := data.NewProfileAboutRepository(db)
	userRepository := data.NewUserRepository(db)

	documentService := service.NewDocumentService(documentRepository)
	siteService := service.NewSiteService(pageInfoRepository, contactInfoRepository, profileAboutRepository, categoryRepository, contactRepository)
	authService := service.NewAuthService(userRepository)

	if err := authService.SeedDefaultUser(context.Background(), testUsername, testPassword); err != nil {
		t.Fatalf("Failed to seed default user: %v", err)
	}

	uploadDir := t.TempDir()
	resources := []admin.Resource{
		admin.NewDocumentResource(documentRepository, categoryRepository, uploadDir, log),
		admin.NewCategoryResource(categoryRepository),
		admin.NewContactResource(contactRepository),
		admin.NewPageInfoResource(pageInfoRepository),
		admin.NewContactInfoResource(contactInfoRepository),
		admin.NewProfileAboutResource(profileAboutRepository),
		admin.NewUserResource(userRepository),
	}

	siteHandler := NewSiteHandler(siteService, documentService, viewService, log)
	authHandler := NewAuthHandler(authService, sessionManager, viewService, log)
	adminHandler := NewAdminHandler(resources, viewService, log)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)

	router := NewRouter(siteHandler, authHandler, adminHandler, authzMiddleware, errorMiddleware, sessionManager, web.StaticFS)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &testApp{
		server:     server,
		documents:  documentRepository,
		categories: categoryRepository,
		contacts:   contactRepository,
		pageInfo:   pageInfoRepository,
		abouts:     profileAboutRepository,
		users:      userRepository,
		uploadDir:  uploadDir,
	}
}

// client returns an HTTP client with a cookie jar that does not follow
// redirects, so tests can assert on Location headers.
func (app *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// login authenticates the client's session with the seeded credential.
func (app *testApp) login(t *testing.T, client *http.Client) {
	t.Helper()
	form := url.Values{"username": {testUsername}, "password": {testPassword}}
	resp, err := client.PostForm(app.server.URL+"/login", form)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin" {
		t.Fatalf("Login did not succeed: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

// get issues a GET through the client and returns the response and body.
func (app *testApp) get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(app.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp, string(body)
}

// seedCategory inserts a category and returns its id.
func (app *testApp) seedCategory(t *testing.T, name string) int64 {
	t.Helper()
	id, err := app.categories.Create(context.Background(), &data.Category{Name: name})
	if err != nil {
		t.Fatalf("Failed to seed category %q: %v", name, err)
	}
	return id
}

// seedDocument inserts a document row directly and returns its id.
func (app *testApp) seedDocument(t *testing.T, filename string, content []byte, categoryID int64) int64 {
	t.Helper()
	id, err := app.documents.Create(context.Background(), &data.Document{
		Filename:   filename,
		Content:    content,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("Failed to seed document %q: %v", filename, err)
	}
	return id
}

// readBody drains and closes a response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(body)
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("expected response body to contain %q", want)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("expected response body not to contain %q", unwanted)
	}
}
