package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"cart-service/internal/catalog"
	"cart-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{ID: "1", Name: "Minimalist Ceramic Vase", Category: "Home Decor", Popularity: 8},
		{ID: "2", Name: "Linen Throw Pillow", Category: "Textiles", Popularity: 10},
		{ID: "3", Name: "Artisan Wooden Bowl", Category: "Kitchenware", Popularity: 6},
		{ID: "4", Name: "Copper Desk Lamp", Category: "Home Decor", Popularity: 7},
		{ID: "5", Name: "Minimalist Wall Clock", Category: "Home Decor", Popularity: 9},
	})
}

type stubRecommender struct {
	resp *Response
	err  error
}

func (s *stubRecommender) Recommend(_ context.Context, _ *Request) (*Response, error) {
	return s.resp, s.err
}

func TestNameMatchingIsCaseInsensitiveSubstring(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{
		resp: &Response{Recommendations: []string{"ceramic vase", "WALL CLOCK", "unknown thing"}},
	})

	products := svc.For(context.Background(), "2", "Textiles")
	require.NotEmpty(t, products)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "5", products[1].ID)
}

func TestContextProductExcluded(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{
		resp: &Response{Recommendations: []string{"Minimalist Ceramic Vase"}},
	})

	products := svc.For(context.Background(), "1", "Home Decor")
	require.LessOrEqual(t, len(products), MaxResults)
	for _, p := range products {
		assert.NotEqual(t, "1", p.ID)
	}
}

func TestDuplicateNamesDeduplicated(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{
		resp: &Response{Recommendations: []string{"Wooden Bowl", "wooden bowl", "Artisan"}},
	})

	products := svc.For(context.Background(), "2", "Textiles")
	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate product %s", p.ID)
		seen[p.ID] = true
	}
}

func TestFetchFailureFallsBackToCategoryPopularity(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{err: errors.New("upstream down")})

	products := svc.For(context.Background(), "1", "Home Decor")
	require.Len(t, products, 2)
	// Same category, context product excluded, popularity descending.
	assert.Equal(t, "5", products[0].ID)
	assert.Equal(t, "4", products[1].ID)
	for _, p := range products {
		assert.Equal(t, "Home Decor", p.Category)
	}
}

func TestThinResultsSupplementedFromCategory(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{
		resp: &Response{Recommendations: []string{"Desk Lamp"}},
	})

	products := svc.For(context.Background(), "1", "Home Decor")
	require.Len(t, products, 2)
	assert.Equal(t, "4", products[0].ID)
	assert.Equal(t, "5", products[1].ID)
}

func TestNilRecommenderServesFallbackOnly(t *testing.T) {
	svc := NewService(testCatalog(), nil)

	products := svc.For(context.Background(), "5", "Home Decor")
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "4", products[1].ID)
}

func TestResultsNeverExceedMax(t *testing.T) {
	svc := NewService(testCatalog(), &stubRecommender{
		resp: &Response{Recommendations: []string{"Vase", "Pillow", "Bowl", "Lamp", "Clock"}},
	})

	products := svc.For(context.Background(), "none", "Home Decor")
	assert.LessOrEqual(t, len(products), MaxResults)
}

type sequencedRecommender struct {
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (s *sequencedRecommender) Recommend(_ context.Context, _ *Request) (*Response, error) {
	if atomic.AddInt32(&s.calls, 1) == 1 {
		close(s.started)
		<-s.release
		return &Response{Recommendations: []string{"Ceramic Vase"}}, nil
	}
	return &Response{Recommendations: []string{"Wall Clock"}}, nil
}

func TestFetcherLastRequestWins(t *testing.T) {
	rec := &sequencedRecommender{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	fetcher := NewFetcher(NewService(testCatalog(), rec))

	done := make(chan struct{})
	go func() {
		fetcher.Fetch(context.Background(), "2", "Textiles")
		close(done)
	}()
	<-rec.started

	// A newer request for a different product supersedes the in-flight one.
	fetcher.Fetch(context.Background(), "3", "Kitchenware")
	close(rec.release)
	<-done

	productID, category, current := fetcher.Current()
	assert.Equal(t, "3", productID)
	assert.Equal(t, "Kitchenware", category)
	require.NotEmpty(t, current)
	assert.Equal(t, "5", current[0].ID)
}
