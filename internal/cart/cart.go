// Package cart keeps one slot per visitor, holding a JSON array of product
// snapshots with quantities. Totals are recomputed from the items on every
// read, nothing is cached.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/models"
)

var (
	ErrNotFound   = errors.New("cart item not found")
	ErrValidation = errors.New("validation")
)

// Summary is the derived view used by the cart badge and the order box.
type Summary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type Service struct {
	store kvstore.Store
	mu    sync.Mutex
}

func New(store kvstore.Store) *Service {
	return &Service{store: store}
}

func slotKey(visitorID string) string {
	return "cart:" + visitorID
}

func (s *Service) load(ctx context.Context, visitorID string) ([]models.CartItem, error) {
	raw, err := s.store.Get(ctx, slotKey(visitorID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// a corrupted cart starts over empty
		return nil, nil
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, visitorID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, slotKey(visitorID), string(data)); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}

func (s *Service) Items(ctx context.Context, visitorID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, visitorID)
}

// Add puts a snapshot of the product into the cart. Adding a product that is
// already present merges into the existing item by incrementing its quantity.
func (s *Service) Add(ctx context.Context, visitorID string, product models.Product, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == product.ID {
			items[i].Quantity += quantity
			if err := s.save(ctx, visitorID, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}

	items = append(items, models.CartItem{Product: product, Quantity: quantity})
	if err := s.save(ctx, visitorID, items); err != nil {
		return nil, err
	}
	return &items[len(items)-1], nil
}

// UpdateQuantity sets the quantity of the item with the given product id.
// A quantity of zero or less removes the item, so callers do not have to
// clamp before calling.
func (s *Service) UpdateQuantity(ctx context.Context, visitorID string, productID, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID != productID {
			continue
		}
		if quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
			if err := s.save(ctx, visitorID, items); err != nil {
				return nil, err
			}
			return nil, nil
		}
		items[i].Quantity = quantity
		if err := s.save(ctx, visitorID, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, ErrNotFound
}

// Remove deletes the item with the given product id, a no-op when absent.
func (s *Service) Remove(ctx context.Context, visitorID string, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, visitorID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.save(ctx, visitorID, kept)
}

func (s *Service) Clear(ctx context.Context, visitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, slotKey(visitorID)); err != nil {
		return fmt.Errorf("clear cart slot: %w", err)
	}
	return nil
}

func (s *Service) Summarize(ctx context.Context, visitorID string) (*Summary, error) {
	items, err := s.Items(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	for i := range items {
		sum.Total += items[i].Subtotal()
		sum.Count += items[i].Quantity
	}
	return sum, nil
}
