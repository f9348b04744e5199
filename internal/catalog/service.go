package catalog

import (
	"context"
	"time"

	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

const listKey = "catalog:helicopters"

// API is the slice of the backend client the catalog needs
type API interface {
	ListHelicopters(ctx context.Context) ([]domain.Helicopter, error)
	AddHelicopter(ctx context.Context, token string, req domain.AddHelicopterRequest) (*domain.Helicopter, error)
	DeleteHelicopter(ctx context.Context, token string, id domain.ID) error
}

// Service serves the public helicopter catalog from cache, falling back to the backend
type Service struct {
	api   API
	cache Cache
	ttl   time.Duration
}

func NewService(api API, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Service{api: api, cache: cache, ttl: ttl}
}

// List returns the catalog with display fields. A cache failure is logged and the
// backend is asked directly.
func (s *Service) List(ctx context.Context) ([]domain.HelicopterListing, error) {
	var helis []domain.Helicopter
	hit, err := s.cache.Get(ctx, listKey, &helis)
	if err != nil {
		logger.WarnContext(ctx, "Catalog cache read failed", "error", err)
	}
	if !hit {
		helis, err = s.load(ctx)
		if err != nil {
			return nil, err
		}
	}
	return Enrich(helis), nil
}

// Refresh reloads the catalog from the backend into the cache
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *Service) Add(ctx context.Context, token string, req domain.AddHelicopterRequest) (*domain.HelicopterListing, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	h, err := s.api.AddHelicopter(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	return &Enrich([]domain.Helicopter{*h})[0], nil
}

func (s *Service) Delete(ctx context.Context, token string, id domain.ID) error {
	if err := s.api.DeleteHelicopter(ctx, token, id); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate drops the cached catalog so the next List goes to the backend
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, listKey); err != nil {
		logger.WarnContext(ctx, "Catalog cache invalidation failed", "error", err)
	}
}

func (s *Service) load(ctx context.Context) ([]domain.Helicopter, error) {
	helis, err := s.api.ListHelicopters(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, listKey, helis, s.ttl); err != nil {
		logger.WarnContext(ctx, "Catalog cache write failed", "error", err)
	}
	return helis, nil
}
