package services

import (
	"context"
	"fmt"

	"tradebook-backend/internal/cache"
	"tradebook-backend/internal/events"
	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
)

// OptionService handles reference-data business logic across the closed
// set of option kinds. The listing cache is injected; every mutating
// operation invalidates the affected kind.
type OptionService struct {
	repos     *repositories.Repositories
	cache     cache.OptionCache
	publisher events.Publisher
}

// NewOptionService creates a new option service
func NewOptionService(repos *repositories.Repositories, optionCache cache.OptionCache, publisher events.Publisher) *OptionService {
	if optionCache == nil {
		optionCache = cache.NewNoopOptionCache()
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &OptionService{repos: repos, cache: optionCache, publisher: publisher}
}

// scopeUser returns the user scope for a kind: per-user kinds (tags) are
// scoped, shared kinds are not
func scopeUser(kind models.OptionKind, userID uuid.UUID) *uuid.UUID {
	if kind.IsPerUser() {
		return &userID
	}
	return nil
}

// ListOptions returns the entries of one kind in display order. The full
// list is cached; the picker's activeOnly view filters in memory so both
// views share one cache entry.
func (s *OptionService) ListOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, activeOnly bool) ([]models.OptionItem, error) {
	scope := scopeUser(kind, userID)

	items, hit := s.cache.Get(ctx, kind, scope)
	if !hit {
		var err error
		items, err = s.repos.Option.List(ctx, kind, scope, false)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, kind, scope, items)
	}

	if !activeOnly {
		return items, nil
	}
	active := make([]models.OptionItem, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active, nil
}

// CreateOption adds an entry appended after the current max display order.
// Names are unique within the kind, per user for per-user kinds.
func (s *OptionService) CreateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.CreateOptionRequest) (*models.OptionItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}
	scope := scopeUser(kind, userID)

	existing, err := s.repos.Option.GetByName(ctx, kind, req.Name, scope)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repositories.ErrOptionNameExists
	}

	maxOrder, err := s.repos.Option.MaxDisplayOrder(ctx, kind, scope)
	if err != nil {
		return nil, err
	}

	item := &models.OptionItem{
		Name:         req.Name,
		DisplayOrder: maxOrder + 1,
		IsActive:     true,
	}
	if err := s.repos.Option.Create(ctx, kind, item, scope); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, kind, scope)
	s.publisher.Publish(events.Event{
		Subject:  events.SubjectOptionsChanged,
		UserID:   userID,
		EntityID: item.ID.String(),
		Kind:     string(kind),
	})
	return item, nil
}

// UpdateOption patches an entry; the uniqueness rule applies to renames
func (s *OptionService) UpdateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID, req *models.UpdateOptionRequest) (*models.OptionItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}
	scope := scopeUser(kind, userID)

	if req.Name != nil {
		existing, err := s.repos.Option.GetByName(ctx, kind, *req.Name, scope)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, repositories.ErrOptionNameExists
		}
	}

	updates := req.ToUpdateMap()
	if err := s.repos.Option.Update(ctx, kind, id, updates); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, kind, scope)
	s.publisher.Publish(events.Event{
		Subject:  events.SubjectOptionsChanged,
		UserID:   userID,
		EntityID: id.String(),
		Kind:     string(kind),
	})
	return s.repos.Option.GetByID(ctx, kind, id)
}

// DeleteOption removes an entry; the repository re-checks the reference
// count inside the delete transaction
func (s *OptionService) DeleteOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID) error {
	if err := s.repos.Option.Delete(ctx, kind, id); err != nil {
		return err
	}

	scope := scopeUser(kind, userID)
	s.cache.Invalidate(ctx, kind, scope)
	s.publisher.Publish(events.Event{
		Subject:  events.SubjectOptionsChanged,
		UserID:   userID,
		EntityID: id.String(),
		Kind:     string(kind),
	})
	return nil
}

// ReorderOptions applies a batch of display-order changes all-or-nothing
func (s *OptionService) ReorderOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.ReorderOptionsRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	if err := s.repos.Option.Reorder(ctx, kind, req.Items); err != nil {
		return err
	}

	scope := scopeUser(kind, userID)
	s.cache.Invalidate(ctx, kind, scope)
	s.publisher.Publish(events.Event{
		Subject: events.SubjectOptionsReordered,
		UserID:  userID,
		Kind:    string(kind),
	})
	return nil
}

// UsageCount reports how many trades still reference the entry. Serves the
// pre-delete usage check; the delete path never trusts this number alone.
func (s *OptionService) UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error) {
	return s.repos.Option.UsageCount(ctx, kind, id)
}
