package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	domain "github.com/example/order-management/domain/catalog"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidInput is returned for malformed product data, before any store
// access.
var ErrInvalidInput = errors.New("invalid input")

// CacheService is the subset of cache operations the catalog needs.
// A nil CacheService disables caching; reads go straight to the database.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Service provides catalog operations with cache-aside reads.
type Service struct {
	repo    *Repository
	cache   CacheService
	sfGroup singleflight.Group
}

// NewService creates a new catalog service.
func NewService(repo *Repository, cache CacheService) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// SetCache installs or replaces the cache layer.
func (s *Service) SetCache(cache CacheService) {
	s.cache = cache
}

func cacheKeyByID(id uint) string {
	return "id:" + strconv.FormatUint(uint64(id), 10)
}

const cacheKeyList = "list"

// Create validates and saves a new product. Caches are invalidated so the
// next list read sees the new product.
func (s *Service) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be non-negative", ErrInvalidInput)
	}

	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKeyList); err != nil {
			log.Printf("[catalog] Warning: failed to invalidate list cache: %v", err)
		}
	}

	return p, nil
}

// GetByID retrieves a product, serving from cache when possible. The second
// return value reports whether the result came from the cache.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Product, bool, error) {
	if s.cache != nil {
		var cached domain.Product
		found, err := s.cache.Get(ctx, cacheKeyByID(id), &cached)
		if err != nil {
			log.Printf("[catalog] Cache error for ID=%d: %v", id, err)
		}
		if found {
			return &cached, true, nil
		}
	}

	// Cache miss: collapse concurrent lookups for the same product into a
	// single database query.
	sfKey := "product:" + strconv.FormatUint(uint64(id), 10)
	val, err, _ := s.sfGroup.Do(sfKey, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, false, err
	}
	p := val.(*domain.Product)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyByID(id), p); err != nil {
			log.Printf("[catalog] Warning: failed to cache product ID=%d: %v", id, err)
		}
	}

	return p, false, nil
}

// List retrieves all products, serving from cache when possible.
func (s *Service) List(ctx context.Context) ([]domain.Product, bool, error) {
	if s.cache != nil {
		var cached []domain.Product
		found, err := s.cache.Get(ctx, cacheKeyList, &cached)
		if err != nil {
			log.Printf("[catalog] Cache error for list: %v", err)
		}
		if found {
			return cached, true, nil
		}
	}

	val, err, _ := s.sfGroup.Do("list", func() (any, error) {
		return s.repo.FindAll(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	products := val.([]domain.Product)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyList, products); err != nil {
			log.Printf("[catalog] Warning: failed to cache list: %v", err)
		}
	}

	return products, false, nil
}

// InvalidateProducts drops cached entries for the given products plus the
// list cache. Called after stock mutations commit.
func (s *Service) InvalidateProducts(ctx context.Context, ids ...uint) {
	if s.cache == nil {
		return
	}
	for _, id := range ids {
		if err := s.cache.Delete(ctx, cacheKeyByID(id)); err != nil {
			log.Printf("[catalog] Warning: failed to invalidate cache for ID=%d: %v", id, err)
		}
	}
	if err := s.cache.Delete(ctx, cacheKeyList); err != nil {
		log.Printf("[catalog] Warning: failed to invalidate list cache: %v", err)
	}
}
