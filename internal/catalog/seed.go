package catalog

import "github.com/arshprem01/flower-eCommerce/internal/models"

// Defaults returns a fresh copy of the seed catalog. Callers get their own
// slices and may mutate them freely.
func Defaults() []models.Product {
	seed := []models.Product{
		{
			ID:          1,
			Name:        "Velvet Rose Bouquet",
			Price:       89.99,
			Category:    "bouquets",
			Image:       "/images/products/velvet-rose-bouquet.png",
			Description: "A luxurious arrangement of deep red velvet roses, perfect for romantic occasions.",
			Tags:        []string{"popular", "romantic"},
		},
		{
			ID:          2,
			Name:        "Spring Awakening",
			Price:       65.00,
			Category:    "mixed",
			Image:       "/images/products/spring-awakening.png",
			Description: "Bright tulips, daffodils, and hyacinths to welcome the spring season.",
			Tags:        []string{"seasonal", "fresh"},
		},
		{
			ID:          3,
			Name:        "White Elegance",
			Price:       120.00,
			Category:    "weddings",
			Image:       "/images/products/white-elegance.png",
			Description: "Pristine white lilies and orchids arranged in a tall glass vase.",
			Tags:        []string{"luxury", "wedding"},
		},
		{
			ID:          4,
			Name:        "Lavender Dreams",
			Price:       75.50,
			Category:    "dried",
			Image:       "/images/products/lavender-dreams.png",
			Description: "A calming bundle of dried lavender and wheat, perfect for home decor.",
			Tags:        []string{"dried", "calming"},
		},
		{
			ID:          5,
			Name:        "Royal Orchid",
			Price:       45.00,
			Category:    "potted",
			Image:       "/images/products/royal-orchid.png",
			Description: "A single stem purple orchid in a ceramic pot.",
			Tags:        []string{"gift", "indoor"},
		},
		{
			ID:          6,
			Name:        "Sunset Glory",
			Price:       95.00,
			Category:    "bouquets",
			Image:       "/images/products/sunset-glory.png",
			Description: "Vibrant orange and pink blooms that capture the essence of a sunset.",
			Tags:        []string{"vibrant", "party"},
		},
	}

	out := make([]models.Product, len(seed))
	for i, p := range seed {
		out[i] = p
		out[i].Tags = append([]string(nil), p.Tags...)
	}
	return out
}
