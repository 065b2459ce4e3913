package repository

import (
	"context"
	"testing"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\d`, escapeLike(`c:\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDeliveryTypeRepository(setupTestDB(t))

	id, err := repo.Insert(ctx, &model.DeliveryType{ID: 42, Name: "Courier"})
	require.NoError(t, err)
	assert.NotEqual(t, uint(42), id, "insert assigns a fresh id")

	found, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Courier", found.Name)

	found.Name = "Express courier"
	updatedID, err := repo.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)

	found, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Express courier", found.Name)

	require.NoError(t, repo.Delete(ctx, id))

	found, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewDeliveryTypeRepository(setupTestDB(t))

	found, err := repo.Get(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewDeliveryTypeRepository(setupTestDB(t))

	_, err := repo.Update(ctx, &model.DeliveryType{ID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.Update(ctx, &model.DeliveryType{Name: "No id"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo := NewDeliveryTypeRepository(setupTestDB(t))

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetAllOrderedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewDeliveryTypeRepository(setupTestDB(t))

	for _, name := range []string{"Post", "Courier", "Pickup"} {
		_, err := repo.Insert(ctx, &model.DeliveryType{Name: name})
		require.NoError(t, err)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Post", all[0].Name)
	assert.Equal(t, "Courier", all[1].Name)
	assert.Equal(t, "Pickup", all[2].Name)
}

func TestRepository_GetByColumn(t *testing.T) {
	ctx := context.Background()
	repo := NewProductTypeRepository(setupTestDB(t))

	for _, name := range []string{"Bread", "Meat", "Water", "100% juice", "soft_drinks"} {
		_, err := repo.Insert(ctx, &model.ProductType{Name: name})
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		value  string
		strict bool
		want   []string
	}{
		{name: "Substring is case-insensitive", value: "EA", want: []string{"Bread", "Meat"}},
		{name: "Strict requires the whole value", value: "ea", strict: true, want: nil},
		{name: "Strict ignores case", value: "BREAD", strict: true, want: []string{"Bread"}},
		{name: "Percent is literal", value: "0%", want: []string{"100% juice"}},
		{name: "Underscore is literal", value: "t_d", want: []string{"soft_drinks"}},
		{name: "No match", value: "xyz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.GetByColumn(ctx, "name", tt.value, tt.strict)
			require.NoError(t, err)

			var names []string
			for _, pt := range found {
				names = append(names, pt.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRepository_GetByColumnUnknownKey(t *testing.T) {
	repo := NewProductTypeRepository(setupTestDB(t))

	_, err := repo.GetByColumn(context.Background(), "description", "x", false)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}
