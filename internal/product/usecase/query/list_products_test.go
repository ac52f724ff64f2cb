package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/api/internal/favorite"
	"github.com/pandamarket/api/internal/favorite/inmemory"
	"github.com/pandamarket/api/internal/product/domain"
	"github.com/pandamarket/api/internal/product/repository"
	"github.com/pandamarket/api/internal/product/usecase/query"
)

func seedProducts(t *testing.T, repo *repository.MemoryProductRepository, store *inmemory.Store) []uint {
	t.Helper()
	ctx := context.Background()

	seeds := []struct {
		name  string
		likes int
	}{
		{"red lamp", 3},
		{"blue chair", 1},
		{"Lamp shade", 0},
		{"desk", 5},
	}

	var ids []uint
	for _, seed := range seeds {
		product := &domain.Product{OwnerID: 1, Name: seed.name, Price: 100}
		require.NoError(t, repo.Create(ctx, product))
		for u := 0; u < seed.likes; u++ {
			target := favorite.Target{Type: favorite.TargetProduct, ID: product.ID}
			require.NoError(t, store.Like(ctx, target, uint(100+u)))
		}
		ids = append(ids, product.ID)
	}
	return ids
}

func TestListProductsOrderByFavorite(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)
	ids := seedProducts(t, repo, store)
	handler := query.NewListProductsHandler(repo, store)

	result, err := handler.Handle(context.Background(), query.ListProductsQuery{OrderBy: "favorite"})
	require.NoError(t, err)

	require.Len(t, result.List, 4)
	assert.Equal(t, ids[3], result.List[0].ID) // desk, 5 likes
	assert.Equal(t, ids[0], result.List[1].ID) // red lamp, 3 likes
	for i := 1; i < len(result.List); i++ {
		assert.GreaterOrEqual(t, result.List[i-1].FavoriteCount, result.List[i].FavoriteCount)
	}
}

func TestListProductsLikeAlias(t *testing.T) {
	assert.Equal(t, domain.OrderFavorite, query.NormalizeOrder("like"))
	assert.Equal(t, domain.OrderFavorite, query.NormalizeOrder("favorite"))
	assert.Equal(t, domain.OrderRecent, query.NormalizeOrder(""))
	assert.Equal(t, domain.OrderRecent, query.NormalizeOrder("other"))
}

func TestListProductsKeywordCaseInsensitive(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)
	seedProducts(t, repo, store)
	handler := query.NewListProductsHandler(repo, store)

	result, err := handler.Handle(context.Background(), query.ListProductsQuery{Keyword: "LAMP"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.TotalCount)
	require.Len(t, result.List, 2)
	for _, p := range result.List {
		assert.Contains(t, []string{"red lamp", "Lamp shade"}, p.Name)
	}
}

func TestListProductsClampsLimit(t *testing.T) {
	assert.Equal(t, 10, query.ClampLimit(0))
	assert.Equal(t, 10, query.ClampLimit(-5))
	assert.Equal(t, 100, query.ClampLimit(500))
	assert.Equal(t, 7, query.ClampLimit(7))
}

func TestListProductsDecoratesViewerFavorites(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)
	ids := seedProducts(t, repo, store)
	handler := query.NewListProductsHandler(repo, store)
	ctx := context.Background()

	viewer := uint(7)
	target := favorite.Target{Type: favorite.TargetProduct, ID: ids[1]}
	require.NoError(t, store.Like(ctx, target, viewer))

	result, err := handler.Handle(ctx, query.ListProductsQuery{ViewerID: viewer})
	require.NoError(t, err)

	for _, p := range result.List {
		assert.Equal(t, p.ID == ids[1], p.IsFavorite, "product %d", p.ID)
	}
}

func TestListProductsAnonymousHasNoFavorites(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)
	seedProducts(t, repo, store)
	handler := query.NewListProductsHandler(repo, store)

	result, err := handler.Handle(context.Background(), query.ListProductsQuery{})
	require.NoError(t, err)
	for _, p := range result.List {
		assert.False(t, p.IsFavorite)
	}
}

func TestBestProductsOrdering(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	store := inmemory.New(repo)
	ids := seedProducts(t, repo, store)
	handler := query.NewBestProductsHandler(repo)

	best, err := handler.Handle(context.Background(), query.BestProductsQuery{Limit: 2})
	require.NoError(t, err)

	require.Len(t, best, 2)
	assert.Equal(t, ids[3], best[0].ID)
	assert.Equal(t, ids[0], best[1].ID)
}
