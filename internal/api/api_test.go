package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/blob"
	"github.com/mesh-intelligence/larder/internal/service"
	"github.com/mesh-intelligence/larder/internal/sqlite"
)

func newTestServer(t *testing.T, addr string) *Server {
	t.Helper()

	storage, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	stores := sqlite.NewStoreRepository(storage)
	ingredients := sqlite.NewIngredientRepository(storage)
	dishes := sqlite.NewDishRepository(storage)
	lists := sqlite.NewShoppingListRepository(storage)

	blobs := blob.NewMemory()
	logger := zap.NewNop().Sugar()

	return NewServer(
		Config{Addr: addr, Env: "test"},
		logger,
		service.NewCatalogService(stores, ingredients, dishes, lists, blobs, logger),
		service.NewDishService(dishes, ingredients, logger),
		service.NewShoppingService(lists, dishes, ingredients, stores, logger),
		blobs,
		storage,
	)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return newTestServer(t, ":0").mount()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerRun(t *testing.T) {
	t.Run("context cancel stops the server", func(t *testing.T) {
		server := newTestServer(t, "127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- server.Run(ctx) }()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop after context cancel")
		}
	})

	t.Run("listen failure returns promptly", func(t *testing.T) {
		// Occupy a port so ListenAndServe fails at startup.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		server := newTestServer(t, ln.Addr().String())

		done := make(chan error, 1)
		go func() { done <- server.Run(context.Background()) }()

		select {
		case err := <-done:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not report the listen failure")
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.Services["database"])
}

func TestStoreEndpoints(t *testing.T) {
	h := newTestHandler(t)
	base := "/api/v1/profiles/p1/stores"

	rec := doJSON(t, h, http.MethodPost, base+"/", `{"name":"Grocer","color":"#ff8800"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	storeID := created["store_id"]
	require.NotEmpty(t, storeID)

	t.Run("missing name rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, base+"/", `{"color":"#ffffff"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad color rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, base+"/", `{"name":"X","color":"orange-ish"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list returns created store", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, base+"/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Grocer")
	})

	t.Run("unknown store is 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, base+"/no-such-id", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete is 204", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, base+"/"+storeID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestIngredientDuplicateIs409(t *testing.T) {
	h := newTestHandler(t)
	base := "/api/v1/profiles/p1/ingredients"

	rec := doJSON(t, h, http.MethodPost, base+"/", `{"name":"Milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, base+"/", `{"name":" milk "}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestShoppingListFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/ingredients/", `{"name":"Milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var ing map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ing))

	rec = doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/dishes/",
		`{"name":"Pancakes","items":[{"ingredient_id":"`+ing["ingredient_id"]+`","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var dish map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dish))

	rec = doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/shopping-list/dishes",
		`{"dish_id":"`+dish["dish_id"]+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/shopping-list/dishes",
		`{"dish_id":"`+dish["dish_id"]+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/profiles/p1/shopping-list/aggregated", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Items []struct {
			TotalCount float64   `json:"total_count"`
			Quantities []float64 `json:"quantities"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4.0, view.Items[0].TotalCount)
	assert.Equal(t, []float64{2, 2}, view.Items[0].Quantities)

	t.Run("manual quantity zero rejected on add", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/shopping-list/manual",
			`{"ingredient_id":"`+ing["ingredient_id"]+`","quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("clear resets the list", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/profiles/p1/shopping-list/clear", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, h, http.MethodGet, "/api/v1/profiles/p1/shopping-list/aggregated", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Empty(t, view.Items)
	})
}
