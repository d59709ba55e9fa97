package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/sweetshop/app/models"
	"github.com/shashiranjanraj/sweetshop/app/repositories"
)

func newSweetFixture(t *testing.T) (*SweetService, *fakeSweets, *memDisk) {
	t.Helper()
	sweets := newFakeSweets()
	disk := newMemDisk()
	return NewSweetService(sweets, disk), sweets, disk
}

func TestCreateSweet(t *testing.T) {
	svc, _, _ := newSweetFixture(t)

	sweet, err := svc.Create(context.Background(), "  Kaju Katli  ", " Nut-Based ", 50, 20, "  /img/kaju.png ")
	require.NoError(t, err)

	assert.Equal(t, "Kaju Katli", sweet.Name)
	assert.Equal(t, "Nut-Based", sweet.Category)
	assert.Equal(t, 50.0, sweet.Price)
	assert.Equal(t, 20, sweet.Quantity)
	assert.Equal(t, 0, sweet.Sold, "new stock starts with nothing sold")
	assert.Equal(t, "/img/kaju.png", sweet.Image)
	assert.False(t, sweet.ID.IsZero())
}

func TestSearch(t *testing.T) {
	svc, _, _ := newSweetFixture(t)
	ctx := context.Background()

	mustCreate := func(name, category string, price float64) {
		_, err := svc.Create(ctx, name, category, price, 10, "")
		require.NoError(t, err)
	}
	mustCreate("Kaju Katli", "Nut-Based", 50)
	mustCreate("Gulab Jamun", "Milk-Based", 10)
	mustCreate("Rasgulla", "Milk-Based", 15)

	t.Run("name is a case-insensitive substring", func(t *testing.T) {
		got, err := svc.Search(ctx, repositories.SweetFilter{Name: "KAJU"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Kaju Katli", got[0].Name)
	})

	t.Run("category narrows the set", func(t *testing.T) {
		got, err := svc.Search(ctx, repositories.SweetFilter{Category: "milk"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min, max := 10.0, 15.0
		got, err := svc.Search(ctx, repositories.SweetFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		got, err := svc.Search(ctx, repositories.SweetFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("no match is an empty slice, not an error", func(t *testing.T) {
		got, err := svc.Search(ctx, repositories.SweetFilter{Name: "barfi"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPurchase(t *testing.T) {
	svc, _, _ := newSweetFixture(t)
	ctx := context.Background()

	sweet, err := svc.Create(ctx, "Jalebi", "Fried", 5, 2, "")
	require.NoError(t, err)
	id := sweet.ID.Hex()

	got, err := svc.Purchase(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 1, got.Sold)

	got, err = svc.Purchase(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, 2, got.Sold)

	// The shelf is empty now; further purchases must not drive quantity negative.
	_, err = svc.Purchase(ctx, id)
	assert.ErrorIs(t, err, repositories.ErrOutOfStock)

	_, err = svc.Purchase(ctx, "64b000000000000000000000")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRestock(t *testing.T) {
	svc, _, _ := newSweetFixture(t)
	ctx := context.Background()

	sweet, err := svc.Create(ctx, "Jalebi", "Fried", 5, 0, "")
	require.NoError(t, err)

	got, err := svc.Restock(ctx, sweet.ID.Hex(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	_, err = svc.Restock(ctx, "64b000000000000000000000", 3)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateIsPartial(t *testing.T) {
	svc, _, _ := newSweetFixture(t)
	ctx := context.Background()

	sweet, err := svc.Create(ctx, "Ladoo", "Festival", 8, 30, "/img/ladoo.png")
	require.NoError(t, err)

	price := 9.5
	got, err := svc.Update(ctx, sweet.ID.Hex(), repositories.SweetPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 9.5, got.Price)
	assert.Equal(t, "Ladoo", got.Name, "absent fields stay untouched")
	assert.Equal(t, "/img/ladoo.png", got.Image)

	image := "  /img/ladoo-v2.png  "
	got, err = svc.Update(ctx, sweet.ID.Hex(), repositories.SweetPatch{Image: &image})
	require.NoError(t, err)
	assert.Equal(t, "/img/ladoo-v2.png", got.Image)

	_, err = svc.Update(ctx, "64b000000000000000000000", repositories.SweetPatch{Price: &price})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newSweetFixture(t)
	ctx := context.Background()

	sweet, err := svc.Create(ctx, "Barfi", "Milk-Based", 12, 5, "")
	require.NoError(t, err)
	id := sweet.ID.Hex()

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), repositories.ErrNotFound)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRevenue(t *testing.T) {
	svc, sweets, _ := newSweetFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "Kaju Katli", "Nut-Based", 50, 10, "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "Jalebi", "Fried", 5, 10, "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := sweets.Purchase(ctx, a.ID.Hex())
		require.NoError(t, err)
	}
	_, err = sweets.Purchase(ctx, b.ID.Hex())
	require.NoError(t, err)

	report, err := svc.Revenue(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	byName := map[string]float64{}
	for _, line := range report {
		byName[line.Name] = line.Revenue
	}
	assert.Equal(t, 150.0, byName["Kaju Katli"])
	assert.Equal(t, 5.0, byName["Jalebi"])
}

func TestAttachImage(t *testing.T) {
	svc, _, disk := newSweetFixture(t)
	ctx := context.Background()

	sweet, err := svc.Create(ctx, "Peda", "Milk-Based", 7, 5, "")
	require.NoError(t, err)
	id := sweet.ID.Hex()

	got, err := svc.AttachImage(ctx, id, "peda.PNG", []byte("fake-png"))
	require.NoError(t, err)

	key := "sweets/" + id + ".png"
	assert.True(t, disk.Exists(ctx, key), "upload must land on the disk")
	assert.Equal(t, "http://cdn.test/"+key, got.Image)

	_, err = svc.AttachImage(ctx, id, "notes.txt", []byte("nope"))
	assert.ErrorIs(t, err, ErrBadImage)

	_, err = svc.AttachImage(ctx, "64b000000000000000000000", "peda.png", []byte("fake-png"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.False(t, disk.Exists(ctx, "sweets/64b000000000000000000000.png"), "nothing is written for unknown items")
}

// vanishingSweets simulates a concurrent delete landing between the image
// upload and the document update.
type vanishingSweets struct {
	*fakeSweets
}

func (v *vanishingSweets) Update(_ context.Context, _ string, _ repositories.SweetPatch) (*models.Sweet, error) {
	return nil, repositories.ErrNotFound
}

func TestAttachImageCleansUpWhenSweetVanishes(t *testing.T) {
	base := newFakeSweets()
	disk := newMemDisk()
	svc := NewSweetService(&vanishingSweets{fakeSweets: base}, disk)
	ctx := context.Background()

	sweet := &models.Sweet{Name: "Peda", Category: "Milk-Based", Price: 7, Quantity: 5}
	require.NoError(t, base.Insert(ctx, sweet))
	id := sweet.ID.Hex()

	_, err := svc.AttachImage(ctx, id, "peda.png", []byte("fake-png"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.False(t, disk.Exists(ctx, "sweets/"+id+".png"),
		"the upload must not stay behind when the sweet is gone")
}
