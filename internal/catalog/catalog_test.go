package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/models"
)

func newTestService() *Service {
	return New(kvstore.NewMemory())
}

func testProduct(name string) models.Product {
	return models.Product{
		Name:        name,
		Price:       10,
		Category:    "bouquets",
		Image:       "/images/products/test.png",
		Description: "test description",
	}
}

func TestListAllSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, Defaults(), products)

	// seeding persisted the slot, a second read returns the same list
	again, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, products, again)
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, "products", "{not json"))

	svc := New(store)
	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, Defaults(), products)
}

func TestLoadFallsBackOnInvalidRecords(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, "products", `[{"id":1,"name":"","price":-5}]`))

	svc := New(store)
	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, Defaults(), products)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	p, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Velvet Rose Bouquet", p.Name)
	require.Equal(t, 89.99, p.Price)

	_, err = svc.GetByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, testProduct("Peony Cloud"))
	require.NoError(t, err)
	require.Equal(t, 7, created.ID)

	second, err := svc.Create(ctx, testProduct("Iris Field"))
	require.NoError(t, err)
	require.Equal(t, 8, second.ID)
}

func TestCreateOnEmptyCatalogAssignsOne(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, "products", "[]"))

	svc := New(store)
	created, err := svc.Create(ctx, testProduct("X"))
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
}

func TestCreateIDsStayUniqueAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Delete(ctx, 6))
	created, err := svc.Create(ctx, testProduct("New"))
	require.NoError(t, err)
	require.Equal(t, 6, created.ID)

	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, p := range products {
		require.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	bad := testProduct("Bad")
	bad.Price = 0
	_, err := svc.Create(ctx, bad)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	name := "Crimson Rose Bouquet"
	price := 99.99
	updated, err := svc.Update(ctx, 1, Patch{Name: &name, Price: &price})
	require.NoError(t, err)
	require.Equal(t, 1, updated.ID)
	require.Equal(t, "Crimson Rose Bouquet", updated.Name)
	require.Equal(t, 99.99, updated.Price)
	// untouched fields survive
	require.Equal(t, "bouquets", updated.Category)
	require.Equal(t, []string{"popular", "romantic"}, updated.Tags)
}

func TestUpdateNeverChangesID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	// a patch cannot carry an id field at all, but make sure the stored id
	// matches the addressed one after the write
	name := "Renamed"
	updated, err := svc.Update(ctx, 2, Patch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, 2, updated.ID)

	got, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	name := "Ghost"
	_, err := svc.Update(ctx, 999, Patch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.Delete(ctx, 3))
	_, err := svc.GetByID(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting a missing id is a silent no-op
	require.NoError(t, svc.Delete(ctx, 3))
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"bouquets", "mixed", "weddings", "dried", "potted"}, categories)
}

func TestFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	bouquets, err := svc.Filter(ctx, "bouquets", "")
	require.NoError(t, err)
	require.Len(t, bouquets, 2)

	byQuery, err := svc.Filter(ctx, "", "LAVENDER")
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	require.Equal(t, "Lavender Dreams", byQuery[0].Name)

	byDescription, err := svc.Filter(ctx, "", "ceramic pot")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	require.Equal(t, "Royal Orchid", byDescription[0].Name)

	none, err := svc.Filter(ctx, "bouquets", "orchid")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestResetToDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, testProduct("Extra"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 1))
	name := "Changed"
	_, err = svc.Update(ctx, 2, Patch{Name: &name})
	require.NoError(t, err)

	restored, err := svc.ResetToDefaults(ctx)
	require.NoError(t, err)
	require.Equal(t, Defaults(), restored)

	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, Defaults(), products)
}
