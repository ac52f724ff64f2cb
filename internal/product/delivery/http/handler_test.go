package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/favorite/inmemory"
	producthttp "github.com/pandamarket/api/internal/product/delivery/http"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/pkg/auth"
)

// The handler registers its Prometheus collectors in the constructor, so
// the whole test binary shares one instance.
var (
	setupOnce sync.Once
	router    *mux.Router
	repo      *repository.MemoryProductRepository
)

func setup(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		repo = repository.NewMemoryProductRepository()
		store := inmemory.New(repo)
		router = mux.NewRouter()
		producthttp.NewProductHandler(repo, store, nil).RegisterRoutes(router)
	})
}

func bearerFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, "tester")
	require.NoError(t, err)
	return "Bearer " + token
}

func do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestListProductsEmpty(t *testing.T) {
	setup(t)

	rr := do(http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result struct {
		TotalCount int64            `json:"totalCount"`
		List       []domain.Product `json:"list"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.NotNil(t, result.List)
}

func TestCreateProductRequiresAuth(t *testing.T) {
	setup(t)

	rr := do(http.MethodPost, "/products", "", `{"name":"lamp","price":100}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body, "message")
}

func TestCreateAndLikeFlow(t *testing.T) {
	setup(t)
	owner := bearerFor(t, 1)
	liker := bearerFor(t, 2)

	rr := do(http.MethodPost, "/products", owner, `{"name":"vintage chair","price":45000}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	likePath := "/products/" + itoa(created.ID) + "/like"

	rr = do(http.MethodPost, likePath, liker, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var liked domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &liked))
	assert.Equal(t, int64(1), liked.FavoriteCount)
	assert.True(t, liked.IsFavorite)

	// Second like conflicts with {message} body
	rr = do(http.MethodPost, likePath, liker, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	var conflict map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &conflict))
	assert.NotEmpty(t, conflict["message"])
}

func TestUpdateForeignProductForbidden(t *testing.T) {
	setup(t)
	ctx := context.Background()

	product := &domain.Product{OwnerID: 50, Name: "bookshelf", Price: 1000}
	require.NoError(t, repo.Create(ctx, product))

	rr := do(http.MethodPatch, "/products/"+itoa(product.ID), bearerFor(t, 51), `{"name":"mine now"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDeleteMissingProduct(t *testing.T) {
	setup(t)

	rr := do(http.MethodDelete, "/products/99999", bearerFor(t, 1), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
