package services

import (
	"context"
	"sync"
	"time"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/utils"

	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	log "github.com/sirupsen/logrus"
)

const dropdownCacheKey = "dropdowns"

// DropdownService serves the Drop-Down sheet options from a TTL cache.
type DropdownService struct {
	repo  *repository.DropdownRepository
	cache libcache.Cache
	mu    sync.Mutex
}

func NewDropdownService(repo *repository.DropdownRepository, ttl time.Duration) *DropdownService {
	cache := libcache.LRU.New(1)
	cache.SetTTL(ttl)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		log.Debugf("dropdown cache entry %v expired", key)
	})
	return &DropdownService{repo: repo, cache: cache}
}

// Dropdowns returns cached options, loading them on a miss.
func (s *DropdownService) Dropdowns(ctx context.Context) (models.DropdownOptions, error) {
	if v, ok := s.cache.Load(dropdownCacheKey); ok {
		return v.(models.DropdownOptions), nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the options from the sheet and replaces the cached copy.
func (s *DropdownService) Refresh(ctx context.Context) (models.DropdownOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	opts, err := s.repo.Options(ctx)
	if err != nil {
		return models.DropdownOptions{}, err
	}
	s.cache.Store(dropdownCacheKey, opts)
	return opts, nil
}

// Invalidate drops the cached options.
func (s *DropdownService) Invalidate() {
	s.cache.Delete(dropdownCacheKey)
}
