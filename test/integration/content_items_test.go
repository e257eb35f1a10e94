package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	authMiddleware "github.com/sero63211/daye-course-builder/internal/auth/middleware"
	authService "github.com/sero63211/daye-course-builder/internal/auth/service"
	"github.com/sero63211/daye-course-builder/internal/config"
	"github.com/sero63211/daye-course-builder/internal/handlers"
	"github.com/sero63211/daye-course-builder/internal/models"
	"github.com/sero63211/daye-course-builder/internal/repositories"
	"github.com/sero63211/daye-course-builder/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAuthorID = 7

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
	testToken  string
)

// setupTestRouter creates a test router with the content handler behind auth
func setupTestRouter(db *sql.DB, logger *zap.Logger, tokenGenerator *authService.TokenGenerator) chi.Router {
	repo := repositories.NewContentItemRepository(db)
	svc := services.NewContentService(repo)
	contentHandler := handlers.NewContentHandler(svc, logger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.AuthMiddleware(tokenGenerator))
		contentHandler.RegisterRoutes(r)
	})

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Setup test database
	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	dsn := cfg.DSN()
	if cfg.Database.Host == "" {
		// Default test database connection
		dsn = "root:password@tcp(localhost:3306)/course_builder_test?parseTime=true&charset=utf8mb4"
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	// Test connection
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	// Setup test schema
	setupTestSchemaForMain(testDB)

	// Setup token generator and a test author token
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "integration-test-secret"
	}
	tokenGenerator := authService.NewTokenGenerator(secret, time.Hour, 168*time.Hour)
	testToken, _, err = tokenGenerator.GenerateTokens(testAuthorID)
	if err != nil {
		panic(fmt.Sprintf("Failed to generate test token: %v", err))
	}

	// Setup test router
	testRouter = setupTestRouter(testDB, testLogger, tokenGenerator)

	// Run tests
	code := m.Run()

	// Cleanup
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// setupTestSchemaForMain creates the test database schema (for TestMain)
func setupTestSchemaForMain(db *sql.DB) {
	query := `
		CREATE TABLE IF NOT EXISTS content_items (
			id CHAR(36) PRIMARY KEY,
			author_id INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			text TEXT NOT NULL,
			translation TEXT NOT NULL,
			examples JSON NOT NULL,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			audio_url VARCHAR(512) NOT NULL DEFAULT '',
			content_type VARCHAR(20) NOT NULL,
			INDEX idx_content_items_author (author_id),
			INDEX idx_content_items_type (author_id, content_type)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	db.Exec(query)
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM content_items")
	require.NoError(t, err, "Failed to cleanup test data")
}

// doRequest performs an authenticated request against the test router
func doRequest(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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
	req.Header.Set("Authorization", "Bearer "+testToken)

	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestIntegration_ContentItemLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	// Create a vocabulary item
	createReq := models.CreateContentItemRequest{
		Title:       "Dog",
		Text:        "der Hund",
		Translation: "the dog",
		Examples:    []string{"Der Hund bellt."},
		ContentType: models.ContentTypeVocabulary,
	}
	rec := doRequest(t, http.MethodPost, "/author/content", createReq)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id, ok := created["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)

	// Fetch it back
	rec = doRequest(t, http.MethodGet, "/author/content/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var item models.ContentItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "der Hund", item.Text)
	assert.Equal(t, "the dog", item.Translation)
	assert.Equal(t, models.ContentTypeVocabulary, item.ContentType)
	assert.Equal(t, []string{"Der Hund bellt."}, item.Examples)

	// Update the translation
	updateReq := models.UpdateContentItemRequest{Translation: "the hound"}
	rec = doRequest(t, http.MethodPatch, "/author/content/"+id, updateReq)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doRequest(t, http.MethodGet, "/author/content/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "the hound", item.Translation)

	// Delete it
	rec = doRequest(t, http.MethodDelete, "/author/content/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doRequest(t, http.MethodGet, "/author/content/"+id, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIntegration_ContentItemListFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	seed := []models.CreateContentItemRequest{
		{Title: "Dog", Text: "der Hund", Translation: "the dog", ContentType: models.ContentTypeVocabulary},
		{Title: "Cat", Text: "die Katze", Translation: "the cat", ContentType: models.ContentTypeVocabulary},
		{Title: "Greeting", Text: "Guten Morgen!", Translation: "Good morning!", ContentType: models.ContentTypeSentence},
	}
	for _, req := range seed {
		rec := doRequest(t, http.MethodPost, "/author/content", req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "all items",
			queryParams:    "",
			expectedStatus: http.StatusOK,
			expectedCount:  3,
		},
		{
			name:           "vocabulary only",
			queryParams:    "?contentType=vocabulary",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "sentences only",
			queryParams:    "?contentType=sentence",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "invalid content type",
			queryParams:    "?contentType=bogus",
			expectedStatus: http.StatusBadRequest,
			expectedCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, http.MethodGet, "/author/content"+tt.queryParams, nil)
			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var items []models.ContentItemListItem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
			assert.Len(t, items, tt.expectedCount)
		})
	}
}

func TestIntegration_DuplicateTextRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	req := models.CreateContentItemRequest{
		Title:       "Dog",
		Text:        "der Hund",
		Translation: "the dog",
		ContentType: models.ContentTypeVocabulary,
	}
	rec := doRequest(t, http.MethodPost, "/author/content", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, http.MethodPost, "/author/content", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}
