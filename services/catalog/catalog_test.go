package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
)

var copperRodRequest = ProductRequest{
	Name:        "Copper Rod",
	SKU:         "CU-ROD-01",
	ImageRef:    "img/copper-rod.jpg",
	Price:       1500,
	Stock:       10,
	CategoryUID: "cat-1",
}

func TestCreateProduct(t *testing.T) {
	t.Run("Creates product with derived slug", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("prod-1")

		product, err := sut.createProduct(ctx, copperRodRequest)

		assert.NoError(t, err)
		assert.Equal(t, "prod-1", product.UID)
		assert.Equal(t, "copper-rod", product.Slug)
		assert.True(t, product.IsActive)
		assert.Equal(t, mytime.ExampleTime, product.CreatedAt)
	})

	t.Run("Name collision gets suffixed slug", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		uuider.EXPECT().Create().Return("prod-1")
		uuider.EXPECT().Create().Return("prod-2")

		_, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		second := copperRodRequest
		second.SKU = "CU-ROD-02"
		product, err := sut.createProduct(ctx, second)

		assert.NoError(t, err)
		assert.Equal(t, "copper-rod-1", product.Slug)
	})

	t.Run("SKU collision aborts creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, store, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		uuider.EXPECT().Create().Return("prod-1")
		uuider.EXPECT().Create().Return("prod-2")

		_, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		second := copperRodRequest
		second.Name = "Copper Rod Thick"
		_, err = sut.createProduct(ctx, second)

		assert.Error(t, err)
		duplicate := DuplicateIdentifierError{}
		assert.True(t, errors.As(err, &duplicate))
		assert.Equal(t, "sku", duplicate.Kind)

		all, _ := store.List(ctx)
		assert.Len(t, all, 1)
	})

	t.Run("Missing required fields rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, _, _ := setup(t, ctrl)

		_, err := sut.createProduct(ctx, ProductRequest{Name: "No SKU"})
		assert.Error(t, err)
	})
}

func TestRenameProduct(t *testing.T) {
	t.Run("Rename re-derives slug without colliding with itself", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		uuider.EXPECT().Create().Return("prod-1")

		created, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		renamed, err := sut.renameProduct(ctx, created.UID, "Copper Rod")

		assert.NoError(t, err)
		assert.Equal(t, "copper-rod", renamed.Slug)
	})

	t.Run("Rename onto taken name suffixes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("prod-1")
		uuider.EXPECT().Create().Return("prod-2")

		_, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		second := copperRodRequest
		second.Name = "Zinc Ingot"
		second.SKU = "ZN-ING-01"
		zinc, err := sut.createProduct(ctx, second)
		assert.NoError(t, err)

		renamed, err := sut.renameProduct(ctx, zinc.UID, "Copper Rod")

		assert.NoError(t, err)
		assert.Equal(t, "copper-rod-1", renamed.Slug)
	})
}

func TestSnapshotsAndStock(t *testing.T) {
	t.Run("GetProducts returns fresh snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("prod-1")

		created, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		snapshots, err := sut.GetProducts(ctx, []string{created.UID})

		assert.NoError(t, err)
		assert.Equal(t, []ProductSnapshot{{ProductUID: "prod-1", Price: 1500, Stock: 10, IsActive: true}}, snapshots)
	})

	t.Run("GetProducts on unknown uid fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, _, _, _ := setup(t, ctrl)

		_, err := sut.GetProducts(ctx, []string{"ghost"})

		unknown := UnknownProductError{}
		assert.True(t, errors.As(err, &unknown))
		assert.Equal(t, "ghost", unknown.ProductUID)
	})

	t.Run("DecrementStock lowers stock conditionally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, store, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("prod-1")

		created, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		err = sut.DecrementStock(ctx, created.UID, 4)
		assert.NoError(t, err)

		product, _, _ := store.Get(ctx, created.UID)
		assert.Equal(t, 6, product.Stock)
	})

	t.Run("DecrementStock below available fails and leaves stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, sut, store, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("prod-1")

		created, err := sut.createProduct(ctx, copperRodRequest)
		assert.NoError(t, err)

		err = sut.DecrementStock(ctx, created.UID, 11)

		insufficient := InsufficientStockError{}
		assert.True(t, errors.As(err, &insufficient))
		assert.Equal(t, 10, insufficient.Available)

		product, _, _ := store.Get(ctx, created.UID)
		assert.Equal(t, 10, product.Stock)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *service, mystore.Store[Product], *mytime.MockNower, *myuuid.MockUUIDer) {
	c := context.TODO()
	productStore, _, err := mystore.NewInMemoryStore[Product](c)
	assert.NoError(t, err)
	categoryStore, _, err := mystore.NewInMemoryStore[Category](c)
	assert.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	sut := NewService(productStore, categoryStore, nower, uuider, mylog.New("catalog"))

	return c, sut, productStore, nower, uuider
}
