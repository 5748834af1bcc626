package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
)

func boolPtr(b bool) *bool { return &b }

// newMenuFixture wires a menu service around a single in-memory record that
// both create and read paths share.
func newMenuFixture() (*fakeMenuRepo, MenuService) {
	var stored *models.MenuItem
	repo := &fakeMenuRepo{
		createMenuItem: func(item *models.MenuItem) (int64, error) {
			item.ID = 1
			copied := *item
			stored = &copied
			return 1, nil
		},
		getMenuItemByID: func(id int64) (*models.MenuItem, error) {
			if stored == nil || stored.ID != id {
				return nil, repositories.ErrNotFound
			}
			copied := *stored
			return &copied, nil
		},
		getMenuItemByName: func(name string) (*models.MenuItem, error) {
			if stored != nil && stored.Name == name {
				copied := *stored
				return &copied, nil
			}
			return nil, repositories.ErrNotFound
		},
		updateMenuItem: func(item *models.MenuItem) error {
			copied := *item
			stored = &copied
			return nil
		},
	}
	return repo, NewMenuService(repo, nil)
}

func TestCreateMenuItemDefaultsAndImage(t *testing.T) {
	_, svc := newMenuFixture()

	item, err := svc.CreateMenuItem(CreateMenuItemRequest{
		Name:     "Cappuccino",
		Category: models.MenuCategoryBeverage,
		Price:    floatPtr(4.50),
	}, "/uploads/menu/cappuccino.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Cappuccino", item.Name)
	assert.Equal(t, 4.50, item.Price)
	assert.True(t, item.IsAvailable)
	require.NotNil(t, item.Image)
	assert.Equal(t, "/uploads/menu/cappuccino.jpg", *item.Image)
}

func TestCreateMenuItemWithoutImage(t *testing.T) {
	_, svc := newMenuFixture()

	item, err := svc.CreateMenuItem(CreateMenuItemRequest{
		Name:     "Americano",
		Category: models.MenuCategoryBeverage,
		Price:    floatPtr(3.25),
	}, "")
	require.NoError(t, err)

	assert.Nil(t, item.Image)
}

func TestCreateMenuItemDuplicateName(t *testing.T) {
	_, svc := newMenuFixture()

	_, err := svc.CreateMenuItem(CreateMenuItemRequest{
		Name:     "Espresso",
		Category: models.MenuCategoryBeverage,
		Price:    floatPtr(3.00),
	}, "")
	require.NoError(t, err)

	_, err = svc.CreateMenuItem(CreateMenuItemRequest{
		Name:     "Espresso",
		Category: models.MenuCategoryBeverage,
		Price:    floatPtr(3.50),
	}, "")
	assert.ErrorIs(t, err, ErrMenuItemExists)
}

func TestCreateMenuItemValidation(t *testing.T) {
	_, svc := newMenuFixture()

	cases := []struct {
		name string
		req  CreateMenuItemRequest
	}{
		{"empty name", CreateMenuItemRequest{Name: "  ", Category: models.MenuCategoryDessert, Price: floatPtr(5)}},
		{"unknown category", CreateMenuItemRequest{Name: "Cake", Category: "pastry", Price: floatPtr(5)}},
		{"negative price", CreateMenuItemRequest{Name: "Cake", Category: models.MenuCategoryDessert, Price: floatPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMenuItem(tc.req, "")
			assert.ErrorIs(t, err, ErrMenuValidation)
		})
	}
}

func TestUpdateMenuItemMergesFields(t *testing.T) {
	_, svc := newMenuFixture()

	created, err := svc.CreateMenuItem(CreateMenuItemRequest{
		Name:     "Latte",
		Category: models.MenuCategoryBeverage,
		Price:    floatPtr(4.00),
	}, "/uploads/menu/latte.jpg")
	require.NoError(t, err)

	updated, err := svc.UpdateMenuItem(created.ID, UpdateMenuItemRequest{
		Price:       floatPtr(4.75),
		IsAvailable: boolPtr(false),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Latte", updated.Name)
	assert.Equal(t, models.MenuCategoryBeverage, updated.Category)
	assert.Equal(t, 4.75, updated.Price)
	assert.False(t, updated.IsAvailable)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "/uploads/menu/latte.jpg", *updated.Image)
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	_, svc := newMenuFixture()

	_, err := svc.UpdateMenuItem(99, UpdateMenuItemRequest{Price: floatPtr(1)}, "")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}
