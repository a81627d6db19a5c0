package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cart-service/internal/catalog"
	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// MaxResults bounds every recommendation result set.
const MaxResults = 3

// Service resolves advisory recommendations for a context product. The
// remote recommender returns product names; the service maps them back to
// catalog entries and backstops thin or failed results with a
// category-popularity ranking. Recommendations are advisory: this path can
// degrade but never errors out to the caller.
type Service struct {
	catalog     *catalog.Catalog
	recommender Recommender
	logger      *zap.Logger
}

// NewService creates a recommendation service. A nil recommender disables
// the remote call and serves the fallback ranking only.
func NewService(cat *catalog.Catalog, recommender Recommender) *Service {
	return &Service{
		catalog:     cat,
		recommender: recommender,
		logger:      util.GetLogger(),
	}
}

// For returns up to MaxResults suggested products for the context product,
// excluding the product itself, deduplicated by id.
func (s *Service) For(ctx context.Context, productID, category string) []models.Product {
	ctx, span := util.StartSpan(ctx, "RecommendService.For")
	defer span.End()

	var names []string
	if s.recommender != nil {
		resp, err := s.recommender.Recommend(ctx, s.buildRequest(productID, category))
		if err != nil {
			util.RecommendationFailedTotal.Inc()
			s.logger.Warn("Recommendation fetch failed, using fallback",
				zap.String("product_id", productID),
				zap.Error(err))
		} else if resp != nil {
			names = resp.Recommendations
		}
	}

	products := s.matchNames(names, productID)
	if len(products) < MaxResults {
		products = s.fillFromCategory(products, productID, category)
	}
	if len(products) > MaxResults {
		products = products[:MaxResults]
	}
	return products
}

// buildRequest derives the browsing/purchase context strings the
// recommender expects from the catalog product.
func (s *Service) buildRequest(productID, category string) *Request {
	productName := "current product"
	if p, err := s.catalog.FindByID(productID); err == nil {
		productName = p.Name
	}
	return &Request{
		BrowsingContext: fmt.Sprintf("Viewed %s, similar items in %s.", productName, category),
		PurchaseContext: fmt.Sprintf("Often buys items from %s, prefers minimalist style.", category),
	}
}

// matchNames maps recommender-returned names to catalog products by
// case-insensitive substring match on the product name. Substring matching
// is a deliberately loose policy for free-text suggestions; the category
// fallback is the correctness backstop.
func (s *Service) matchNames(names []string, excludeID string) []models.Product {
	var matched []models.Product
	seen := map[string]bool{excludeID: true}
	products := s.catalog.List()

	for _, name := range names {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		for _, p := range products {
			if seen[p.ID] {
				continue
			}
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matched = append(matched, p)
				seen[p.ID] = true
				break
			}
		}
	}
	return matched
}

// fillFromCategory supplements thin results with same-category products
// ranked by descending popularity; stable sort keeps catalog order on ties.
func (s *Service) fillFromCategory(have []models.Product, excludeID, category string) []models.Product {
	seen := map[string]bool{excludeID: true}
	for _, p := range have {
		seen[p.ID] = true
	}

	var candidates []models.Product
	for _, p := range s.catalog.List() {
		if p.Category == category && !seen[p.ID] {
			candidates = append(candidates, p)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Popularity > candidates[j].Popularity
	})

	for _, p := range candidates {
		if len(have) >= MaxResults {
			break
		}
		have = append(have, p)
	}
	return have
}
