package repository

import (
	"testing"
	"time"

	"github.com/ndemidova/ringshop-backend/internal/app/model"
	"github.com/ndemidova/ringshop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderRepoTest(t *testing.T) (OrderRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := &model.Product{
		Name:        "Test Ring",
		Description: "A ring for order tests",
		Category:    model.CategoryEngagementRing,
		Material:    model.MaterialPlatinum,
		Price:       decimal.NewFromFloat(899.00),
	}
	require.NoError(t, testDB.Create(product).Error)

	return NewOrderRepository(testDB), product
}

func makeOrder(productID uint, createdAt time.Time) *model.Order {
	return &model.Order{
		ProductID:    productID,
		CustomerName: "Boris",
		Email:        "boris@example.com",
		Phone:        "+49123456789",
		RingSize:     "19",
		Quantity:     1,
		Status:       model.OrderStatusNew,
		CreatedAt:    createdAt,
	}
}

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	repo, product := setupOrderRepoTest(t)

	order := makeOrder(product.ID, time.Now())
	order.EngravingText = "forever"
	require.NoError(t, repo.Create(order))
	require.NotZero(t, order.ID)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boris", found.CustomerName)
	assert.Equal(t, "forever", found.EngravingText)
	assert.Equal(t, model.OrderStatusNew, found.Status)

	// The product is loaded with the order.
	assert.Equal(t, product.ID, found.Product.ID)
	assert.Equal(t, "Test Ring", found.Product.Name)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	_, err := repo.FindByID(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindAll_NewestFirstWithProduct(t *testing.T) {
	repo, product := setupOrderRepoTest(t)

	base := time.Now().Add(-time.Hour)
	older := makeOrder(product.ID, base)
	newer := makeOrder(product.ID, base.Add(30*time.Minute))
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	orders, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	assert.Equal(t, "Test Ring", orders[0].Product.Name)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo, product := setupOrderRepoTest(t)

	order := makeOrder(product.ID, time.Now())
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.UpdateStatus(order.ID, model.OrderStatusProcessing))

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, found.Status)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _ := setupOrderRepoTest(t)

	err := repo.UpdateStatus(9999, model.OrderStatusDone)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
