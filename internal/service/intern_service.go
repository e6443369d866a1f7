package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"internhub/internal/cache"
	apperrors "internhub/internal/errors"
	"internhub/internal/model"
	"internhub/internal/repository"
)

const (
	internListCacheKey = "interns:all"
	internListCacheTTL = 5 * time.Minute
)

// InternService exposes read operations backing the intern table view.
type InternService interface {
	GetIntern(ctx context.Context, id uint) (*model.Intern, error)
	ListInterns(ctx context.Context) ([]model.Intern, error)
}

type internService struct {
	repo  repository.InternRepository
	cache cache.Store
}

// NewInternService builds an InternService with repository and cache.
func NewInternService(repo repository.InternRepository, cache cache.Store) InternService {
	return &internService{repo: repo, cache: cache}
}

func (s *internService) GetIntern(ctx context.Context, id uint) (*model.Intern, error) {
	intern, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInternNotFound
		}
		return nil, fmt.Errorf("find intern: %w", err)
	}
	return intern, nil
}

// ListInterns returns all interns, cache-aside with a short TTL. Write paths
// invalidate the key so the table view never lags more than one request.
func (s *internService) ListInterns(ctx context.Context) ([]model.Intern, error) {
	if data, _ := s.cache.Get(ctx, internListCacheKey); data != nil {
		var cached []model.Intern
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	interns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interns: %w", err)
	}

	if payload, err := json.Marshal(interns); err == nil {
		_ = s.cache.Set(ctx, internListCacheKey, payload, internListCacheTTL)
	}
	return interns, nil
}
