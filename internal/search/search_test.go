package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arshprem01/flower-eCommerce/internal/catalog"
	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
)

func TestSearchFallsBackToCatalogFilter(t *testing.T) {
	ctx := context.Background()
	svc := &Service{Catalog: catalog.New(kvstore.NewMemory())}

	hits, err := svc.Search(ctx, "rose")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Velvet Rose Bouquet", hits[0].Name)

	hits, err = svc.Search(ctx, "spring season")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Spring Awakening", hits[0].Name)

	hits, err = svc.Search(ctx, "no such flower")
	require.NoError(t, err)
	require.Empty(t, hits)
}
