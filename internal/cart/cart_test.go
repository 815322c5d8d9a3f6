package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arshprem01/flower-eCommerce/internal/catalog"
	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/models"
)

const visitor = "11111111-2222-3333-4444-555555555555"

func seedProduct(t *testing.T, id int) models.Product {
	t.Helper()
	for _, p := range catalog.Defaults() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("no seed product with id %d", id)
	return models.Product{}
}

func TestAddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())
	rose := seedProduct(t, 1)

	_, err := svc.Add(ctx, visitor, rose, 1)
	require.NoError(t, err)
	item, err := svc.Add(ctx, visitor, rose, 2)
	require.NoError(t, err)
	require.Equal(t, 3, item.Quantity)

	items, err := svc.Items(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, items, 1)

	sum, err := svc.Summarize(ctx, visitor)
	require.NoError(t, err)
	require.InDelta(t, 269.97, sum.Total, 1e-9)
	require.Equal(t, 3, sum.Count)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	item, err := svc.Add(ctx, visitor, seedProduct(t, 2), 0)
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)
}

func TestAddKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())
	rose := seedProduct(t, 1)

	_, err := svc.Add(ctx, visitor, rose, 1)
	require.NoError(t, err)

	// a later catalog edit must not reach the stored snapshot
	rose.Price = 1.00
	items, err := svc.Items(ctx, visitor)
	require.NoError(t, err)
	require.Equal(t, 89.99, items[0].Price)
}

func TestUpdateQuantitySetsDirectly(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, visitor, seedProduct(t, 1), 5)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(ctx, visitor, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, visitor, seedProduct(t, 1), 1)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(ctx, visitor, 1, 0)
	require.NoError(t, err)
	require.Nil(t, item)

	items, err := svc.Items(ctx, visitor)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUpdateQuantityNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.UpdateQuantity(ctx, visitor, 42, 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, visitor, seedProduct(t, 1), 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, visitor, seedProduct(t, 2), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, visitor, 1))
	items, err := svc.Items(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].ID)

	// removing an absent product is a no-op
	require.NoError(t, svc.Remove(ctx, visitor, 99))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, visitor, seedProduct(t, 1), 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, visitor))

	items, err := svc.Items(ctx, visitor)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSummarizeTracksMutations(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, visitor, seedProduct(t, 2), 2) // 65.00 x2
	require.NoError(t, err)
	_, err = svc.Add(ctx, visitor, seedProduct(t, 5), 1) // 45.00
	require.NoError(t, err)

	sum, err := svc.Summarize(ctx, visitor)
	require.NoError(t, err)
	require.InDelta(t, 175.00, sum.Total, 1e-9)
	require.Equal(t, 3, sum.Count)

	_, err = svc.UpdateQuantity(ctx, visitor, 2, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, visitor, 5))

	sum, err = svc.Summarize(ctx, visitor)
	require.NoError(t, err)
	require.InDelta(t, 65.00, sum.Total, 1e-9)
	require.Equal(t, 1, sum.Count)
}

func TestCartsAreIsolatedPerVisitor(t *testing.T) {
	ctx := context.Background()
	svc := New(kvstore.NewMemory())

	_, err := svc.Add(ctx, "visitor-a", seedProduct(t, 1), 1)
	require.NoError(t, err)

	items, err := svc.Items(ctx, "visitor-b")
	require.NoError(t, err)
	require.Empty(t, items)
}
