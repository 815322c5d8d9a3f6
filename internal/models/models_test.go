package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	valid := Product{
		Name:        "Velvet Rose Bouquet",
		Price:       89.99,
		Image:       "/images/products/velvet-rose-bouquet.png",
		Description: "Deep red velvet roses.",
	}
	require.NoError(t, valid.Validate())

	cases := map[string]Product{
		"empty name":        {Price: 1, Image: "x", Description: "d"},
		"empty description": {Name: "n", Price: 1, Image: "x"},
		"empty image":       {Name: "n", Price: 1, Description: "d"},
		"zero price":        {Name: "n", Image: "x", Description: "d"},
		"negative price":    {Name: "n", Price: -3, Image: "x", Description: "d"},
	}
	for name, p := range cases {
		require.ErrorIs(t, p.Validate(), ErrValidation, name)
	}
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{Product: Product{Price: 89.99}, Quantity: 3}
	require.InDelta(t, 269.97, item.Subtotal(), 1e-9)
}
