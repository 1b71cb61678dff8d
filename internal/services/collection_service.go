package services

import (
	"context"
	"fmt"
	"time"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
)

// CollectionService handles named trade grouping business logic
type CollectionService struct {
	repos *repositories.Repositories
}

// NewCollectionService creates a new collection service
func NewCollectionService(repos *repositories.Repositories) *CollectionService {
	return &CollectionService{repos: repos}
}

// CollectionResponse represents one collection in API responses
type CollectionResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"display_order"`
	TradeCount   int64     `json:"trade_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func convertToCollectionResponse(collection *models.Collection, tradeCount int64) *CollectionResponse {
	return &CollectionResponse{
		ID:           collection.ID,
		Name:         collection.Name,
		Description:  collection.Description,
		DisplayOrder: collection.DisplayOrder,
		TradeCount:   tradeCount,
		CreatedAt:    collection.CreatedAt,
		UpdatedAt:    collection.UpdatedAt,
	}
}

// getOwnedCollection loads one collection and enforces ownership; someone
// else's collection is reported as missing
func (s *CollectionService) getOwnedCollection(ctx context.Context, userID, collectionID uuid.UUID) (*models.Collection, error) {
	collection, err := s.repos.Collection.GetByID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil || collection.UserID != userID {
		return nil, repositories.ErrCollectionNotFound
	}
	return collection, nil
}

// CreateCollection creates a collection; names are unique per user
func (s *CollectionService) CreateCollection(ctx context.Context, userID uuid.UUID, req *models.CreateCollectionRequest) (*CollectionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	collection := &models.Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repos.Collection.Create(ctx, collection); err != nil {
		return nil, err
	}
	return convertToCollectionResponse(collection, 0), nil
}

// GetUserCollections lists the user's collections with trade counts
func (s *CollectionService) GetUserCollections(ctx context.Context, userID uuid.UUID) ([]*CollectionResponse, error) {
	collections, err := s.repos.Collection.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.repos.Collection.TradeCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		responses = append(responses, convertToCollectionResponse(collection, counts[collection.ID]))
	}
	return responses, nil
}

// GetCollection retrieves one collection owned by the user
func (s *CollectionService) GetCollection(ctx context.Context, userID, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.getOwnedCollection(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	counts, err := s.repos.Collection.TradeCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return convertToCollectionResponse(collection, counts[collection.ID]), nil
}

// UpdateCollection patches a collection owned by the user
func (s *CollectionService) UpdateCollection(ctx context.Context, userID, collectionID uuid.UUID, req *models.UpdateCollectionRequest) (*CollectionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidInput, err)
	}

	if _, err := s.getOwnedCollection(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if err := s.repos.Collection.Update(ctx, collectionID, updates); err != nil {
		return nil, err
	}

	return s.GetCollection(ctx, userID, collectionID)
}

// DeleteCollection removes a collection and its membership rows. The
// trades themselves are never deleted.
func (s *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID uuid.UUID) error {
	if _, err := s.getOwnedCollection(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.repos.Collection.Delete(ctx, collectionID)
}

// SetCollectionTrades replaces the full trade membership. Every trade must
// belong to the same user; one foreign trade rejects the whole request.
func (s *CollectionService) SetCollectionTrades(ctx context.Context, userID, collectionID uuid.UUID, req *models.SetCollectionTradesRequest) error {
	if _, err := s.getOwnedCollection(ctx, userID, collectionID); err != nil {
		return err
	}

	for _, tradeID := range req.TradeIDs {
		trade, err := s.repos.Trade.GetByID(ctx, tradeID)
		if err != nil {
			return fmt.Errorf("failed to verify trade: %w", err)
		}
		if trade == nil || trade.UserID != userID {
			return fmt.Errorf("%w: trade %s", repositories.ErrInvalidInput, tradeID)
		}
	}

	return s.repos.Collection.SetTrades(ctx, collectionID, req.TradeIDs)
}
