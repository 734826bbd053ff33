package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/redisclient"
	"github.com/opentocoder/storefront/internal/store"
	"github.com/opentocoder/storefront/internal/util"
)

const productCacheTTL = 30 * time.Second

// CatalogService serves product browsing. Product detail goes through a
// short-TTL Redis cache; cached stock is advisory display data and is never
// consulted by the placement transaction.
type CatalogService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, redis *redisclient.Client) *CatalogService {
	return &CatalogService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// ListProducts returns a page of active products and the total count
func (cs *CatalogService) ListProducts(ctx context.Context, page, limit int, sortBy, sortOrder string) ([]models.Product, int, error) {
	return cs.store.ListProducts(ctx, page, limit, sortBy, sortOrder)
}

// GetProduct returns a product by ID, cache-aside. Cache errors degrade to a
// database read.
func (cs *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cs.redis != nil {
		payload, err := cs.redis.GetCachedProduct(ctx, id.String())
		if err != nil {
			cs.logger.Warn("Product cache read failed", zap.Error(err))
		} else if payload != nil {
			var product models.Product
			if err := json.Unmarshal(payload, &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := cs.store.GetProductByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	if cs.redis != nil {
		if payload, err := json.Marshal(product); err == nil {
			if err := cs.redis.CacheProduct(ctx, id.String(), payload, productCacheTTL); err != nil {
				cs.logger.Warn("Product cache write failed", zap.Error(err))
			}
		}
	}
	return product, nil
}

// SearchProducts returns active products matching the query
func (cs *CatalogService) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	return cs.store.SearchProducts(ctx, query, limit)
}

// ListByCategory returns a page of active products in a category
func (cs *CatalogService) ListByCategory(ctx context.Context, category string, page, limit int) ([]models.Product, int, error) {
	return cs.store.ListProductsByCategory(ctx, category, page, limit)
}

// ListCategories returns the distinct active categories
func (cs *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return cs.store.ListCategories(ctx)
}
