// Package catalog owns the product collection. The whole collection lives in
// one kv slot as a JSON array and is rewritten on every mutation.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/models"
)

const slotKey = "products"

var ErrNotFound = errors.New("product not found")

// Patch carries a partial product update. Nil fields are left untouched.
type Patch struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

type Service struct {
	store kvstore.Store

	// serializes the read-modify-write cycle within this process; a second
	// process writing the same slot can still lose updates
	mu sync.Mutex
}

func New(store kvstore.Store) *Service {
	return &Service{store: store}
}

// load returns the persisted collection, seeding the slot with the defaults
// when it is absent. A slot holding malformed JSON or records that fail
// validation is treated the same way, so garbage never propagates past here.
func (s *Service) load(ctx context.Context) ([]models.Product, error) {
	raw, err := s.store.Get(ctx, slotKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("read products slot: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return s.seed(ctx)
	}
	seen := make(map[int]bool, len(products))
	for i := range products {
		if products[i].ID <= 0 || seen[products[i].ID] {
			return s.seed(ctx)
		}
		if err := products[i].Validate(); err != nil {
			return s.seed(ctx)
		}
		seen[products[i].ID] = true
	}
	return products, nil
}

func (s *Service) seed(ctx context.Context) ([]models.Product, error) {
	products := Defaults()
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) save(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	if err := s.store.Set(ctx, slotKey, string(data)); err != nil {
		return fmt.Errorf("write products slot: %w", err)
	}
	return nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for i := range products {
		if products[i].ID > maxID {
			maxID = products[i].ID
		}
	}
	product.ID = maxID + 1

	products = append(products, product)
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) Update(ctx context.Context, id int, patch Patch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		updated := products[i]
		if patch.Name != nil {
			updated.Name = *patch.Name
		}
		if patch.Price != nil {
			updated.Price = *patch.Price
		}
		if patch.Category != nil {
			updated.Category = *patch.Category
		}
		if patch.Image != nil {
			updated.Image = *patch.Image
		}
		if patch.Description != nil {
			updated.Description = *patch.Description
		}
		if patch.Tags != nil {
			updated.Tags = append([]string(nil), (*patch.Tags)...)
		}
		updated.ID = id
		if err := updated.Validate(); err != nil {
			return nil, err
		}

		products[i] = updated
		if err := s.save(ctx, products); err != nil {
			return nil, err
		}
		return &products[i], nil
	}
	return nil, ErrNotFound
}

// Delete removes the product with the given id. Deleting an id that does not
// exist is a no-op.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}
	return s.save(ctx, kept)
}

// Categories returns the distinct category values in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

// Filter returns products matching the category (empty matches all) and a
// case-insensitive substring query over name and description.
func (s *Service) Filter(ctx context.Context, category, query string) ([]models.Product, error) {
	products, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// ResetToDefaults discards the persisted collection and restores the seed
// list verbatim.
func (s *Service) ResetToDefaults(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed(ctx)
}
