package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/logging"
	"github.com/souqhub/marketplace/internal/services/catalog"
	"github.com/souqhub/marketplace/internal/services/listings"
	"github.com/souqhub/marketplace/internal/services/stores"
	"github.com/souqhub/marketplace/internal/services/users"
	"github.com/souqhub/marketplace/internal/storage/memory"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	repo := memory.New()
	authn := auth.NewService(repo, "test-secret", time.Hour, 4)
	h := NewHandler(
		logging.Nop(),
		authn,
		users.NewService(repo),
		stores.NewService(repo),
		catalog.NewService(repo, repo, repo),
		listings.NewService(repo, repo, repo),
	)
	return h.Router([]string{"*"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAs signs up an account and returns its token and user id.
func registerAs(t *testing.T, router *gin.Engine, username, role string) (string, string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cret",
		"fullName": username,
		"phone":    "+9647701234567",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	u, _ := body["user"].(map[string]any)
	id, _ := u["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, "+9647701234567", u["phone"], "registration must keep the phone")
	return token, id
}

func createStore(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/stores", token, gin.H{
		"name":     "Souq",
		"category": "misc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginMe(t *testing.T) {
	router := newTestRouter(t)
	token, id := registerAs(t, router, "amira", "")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "amira",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	u, _ := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, id, u["id"])
	assert.Equal(t, "customer", u["role"])
	_, hasHash := u["passwordHash"]
	assert.False(t, hasHash, "password hash leaked")
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAs(t, router, "amira", "")

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "amira",
		"email":    "second@example.com",
		"password": "s3cret",
		"fullName": "Second",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])
}

func TestLoginBadCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerAs(t, router, "amira", "")

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "amira",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/stores", "/api/products", "/api/services", "/api/jobs", "/api/announcements"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/stores", "", gin.H{"name": "x", "category": "y"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/products", "garbage-token", gin.H{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCustomerCannotCreateStore(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAs(t, router, "amira", "")

	w := doJSON(t, router, http.MethodPost, "/api/stores", token, gin.H{
		"name":     "Souq",
		"category": "misc",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCrossOwnerProductIsForbidden(t *testing.T) {
	router := newTestRouter(t)
	amiraToken, _ := registerAs(t, router, "amira", "store_owner")
	basimToken, _ := registerAs(t, router, "basim", "store_owner")
	adminToken, _ := registerAs(t, router, "root", "admin")

	basimStore := createStore(t, router, basimToken)

	// Amira owns a store of her own, it buys her nothing in Basim's.
	createStore(t, router, amiraToken)
	w := doJSON(t, router, http.MethodPost, "/api/products", amiraToken, gin.H{
		"name":     "hammer",
		"price":    "8.00",
		"storeId":  basimStore,
		"category": "hardware",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// The rightful owner succeeds.
	w = doJSON(t, router, http.MethodPost, "/api/products", basimToken, gin.H{
		"name":     "hammer",
		"price":    "8.00",
		"storeId":  basimStore,
		"category": "hardware",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	productID, _ := decode(t, w)["id"].(string)

	// Cross-owner update and delete are equally rejected.
	w = doJSON(t, router, http.MethodPut, "/api/products/"+productID, amiraToken, gin.H{"name": "mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/products/"+productID, amiraToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin overrides.
	w = doJSON(t, router, http.MethodDelete, "/api/products/"+productID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProductCRUDOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAs(t, router, "amira", "store_owner")
	storeID := createStore(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/api/products", token, gin.H{
		"name":     "baklava",
		"price":    "12.50",
		"storeId":  storeID,
		"category": "sweets",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	productID, _ := created["id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "baklava", decode(t, w)["name"])

	w = doJSON(t, router, http.MethodGet, "/api/products/store/"+storeID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/products/"+productID, token, gin.H{"price": "13.00"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "13.00", decode(t, w)["price"])

	w = doJSON(t, router, http.MethodDelete, "/api/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreListByOwner(t *testing.T) {
	router := newTestRouter(t)
	token, ownerID := registerAs(t, router, "amira", "store_owner")
	createStore(t, router, token)
	createStore(t, router, token)

	w := doJSON(t, router, http.MethodGet, "/api/stores/owner/"+ownerID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestUserRoutes(t *testing.T) {
	router := newTestRouter(t)
	amiraToken, amiraID := registerAs(t, router, "amira", "")
	_, basimID := registerAs(t, router, "basim", "")
	adminToken, _ := registerAs(t, router, "root", "admin")

	// Listing is admin-only.
	w := doJSON(t, router, http.MethodGet, "/api/users", amiraToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Reading another account is forbidden, reading your own is fine.
	w = doJSON(t, router, http.MethodGet, "/api/users/"+basimID, amiraToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/users/"+amiraID, amiraToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Profile update.
	w = doJSON(t, router, http.MethodPut, "/api/users/"+amiraID, amiraToken, gin.H{"fullName": "Amira H."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amira H.", decode(t, w)["fullName"])
}

func TestErrorBodyShape(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/stores/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["error"])
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/stores", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
