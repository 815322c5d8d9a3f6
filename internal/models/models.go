package models

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation")

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name must not be empty: %w", ErrValidation)
	}
	if p.Description == "" {
		return fmt.Errorf("description must not be empty: %w", ErrValidation)
	}
	if p.Image == "" {
		return fmt.Errorf("image must not be empty: %w", ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	}
	return nil
}

// CartItem holds a snapshot of the product at the time it was added.
// Later catalog edits or deletes do not touch it.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
