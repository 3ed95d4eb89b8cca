package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type testEnv struct {
	gw    *Gateway
	store *repository.Store
	db    *gorm.DB
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := repository.NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 3001},
		Auth:   config.AuthConfig{JWTSecret: testSecret, BcryptCost: bcrypt.MinCost},
	}
	gw := NewGateway(cfg, store, zap.NewNop(), opts)
	gw.SetupRoutes()

	return &testEnv{gw: gw, store: store, db: db}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.gw.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(t, req)
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func (e *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.store.AddCategories(ctx, []models.Category{
		{CategoryName: "tools", Description: "Hand tools"},
		{CategoryName: "garden", Description: "Garden supplies"},
	}))
	require.NoError(t, e.store.AddProducts(ctx, []models.Product{
		{ProductName: "Hammer", Price: decimal.NewFromFloat(12.5), ImageURL: "hammer.png", Category: "tools", Amount: 10},
		{ProductName: "Saw", Price: decimal.NewFromInt(30), ImageURL: "saw.png", Category: "tools", Amount: 2},
		{ProductName: "Rake", Price: decimal.NewFromInt(15), ImageURL: "rake.png", Category: "garden", Amount: 5},
		{ProductName: "Hose", Price: decimal.NewFromFloat(20.25), ImageURL: "hose.png", Category: "garden", Amount: 4},
		{ProductName: "Shovel", Price: decimal.NewFromInt(25), ImageURL: "shovel.png", Category: "garden", Amount: 1},
	}))
}

func (e *testEnv) register(t *testing.T, username, password string) {
	t.Helper()
	w := e.postForm(t, "/register", url.Values{
		"fname":    {"Maija"},
		"lname":    {"Virtanen"},
		"username": {username},
		"pw":       {password},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.postForm(t, "/login", url.Values{"username": {username}, "pw": {password}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		JWTToken string `json:"jwtToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.JWTToken)
	return body.JWTToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, w, &body)
	return body["error"]
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.get(t, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w := env.do(t, req)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
}

func TestSwaggerDocServed(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.get(t, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	decode(t, w, &doc)
	assert.Equal(t, "Storefront API", doc.Info.Title)
	assert.Contains(t, doc.Paths["/order"], "post")
	assert.Contains(t, doc.Paths["/stockbalance"], "get")
	assert.Contains(t, doc.Paths["/customer"], "get")
}

func TestStorageErrorIsReportedVerbatim(t *testing.T) {
	env := newTestEnv(t, Options{})
	require.NoError(t, env.store.Close())

	w := env.get(t, "/products", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorMessage(t, w), "database is closed")

	w = env.get(t, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type memoryProfileCache struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	hits     int
}

func (m *memoryProfileCache) GetProfile(_ context.Context, username string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[username]; ok {
		m.hits++
		return p, nil
	}
	return nil, repository.ErrCacheMiss
}

func (m *memoryProfileCache) CacheProfile(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.Username] = profile
	return nil
}

func TestIssuerSharesSecretWithConfig(t *testing.T) {
	env := newTestEnv(t, Options{})
	token, err := auth.NewIssuer(testSecret).Issue("someone")
	require.NoError(t, err)

	username, err := env.gw.issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "someone", username)
}

func TestStartAfterShutdownReturns(t *testing.T) {
	env := newTestEnv(t, Options{})

	require.NoError(t, env.gw.Shutdown(context.Background()))
	assert.NoError(t, env.gw.Start())
}
