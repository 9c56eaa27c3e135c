package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	product, err := NewProduct(uuid.New(), "Test Product", "SKU-001", decimal.NewFromFloat(15.50), 0)
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid input", func(t *testing.T) {
		tenantID := uuid.New()
		product, err := NewProduct(tenantID, "Widget", "W-1", decimal.NewFromFloat(9.99), 10)
		require.NoError(t, err)

		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, "W-1", product.SKU)
		assert.Equal(t, 10, product.StockQty)
		assert.True(t, product.Active)
		assert.True(t, product.CostPrice.IsZero())
		assert.True(t, product.LastCostPrice.IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "  ", "", decimal.NewFromInt(1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Widget", "", decimal.NewFromInt(-1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative initial stock", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Widget", "", decimal.NewFromInt(1), -5)
		assert.Error(t, err)
	})
}

func TestNewProductWithCost(t *testing.T) {
	product, err := NewProductWithCost(uuid.New(), "Widget", "W-1", decimal.NewFromInt(10), decimal.NewFromInt(6), 3)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(6).Equal(product.CostPrice))
	assert.True(t, decimal.NewFromInt(6).Equal(product.LastCostPrice))
	assert.Equal(t, 3, product.StockQty)
}

func TestProduct_ReceiveStock(t *testing.T) {
	t.Run("first stock-in sets cost outright", func(t *testing.T) {
		product := createTestProduct(t)

		err := product.ReceiveStock(10, decimal.NewFromFloat(5.00))
		require.NoError(t, err)

		assert.Equal(t, 10, product.StockQty)
		assert.True(t, decimal.NewFromFloat(5.00).Equal(product.CostPrice))
		assert.True(t, decimal.NewFromFloat(5.00).Equal(product.LastCostPrice))
	})

	t.Run("blends weighted average over existing holding", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(10, decimal.NewFromFloat(5.00)))

		err := product.ReceiveStock(10, decimal.NewFromFloat(7.00))
		require.NoError(t, err)

		// (10*5.00 + 10*7.00) / 20 = 6.00
		assert.Equal(t, 20, product.StockQty)
		assert.True(t, decimal.NewFromFloat(6.00).Equal(product.CostPrice), "got %s", product.CostPrice)
		assert.True(t, decimal.NewFromFloat(7.00).Equal(product.LastCostPrice))
	})

	t.Run("rounds the average to 2 decimal places half-up", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(3, decimal.NewFromFloat(1.00)))

		err := product.ReceiveStock(3, decimal.NewFromFloat(1.01))
		require.NoError(t, err)

		// (3*1.00 + 3*1.01) / 6 = 1.005 -> 1.01
		assert.True(t, decimal.NewFromFloat(1.01).Equal(product.CostPrice), "got %s", product.CostPrice)
	})

	t.Run("uses incoming cost when prior cost is zero despite stock on hand", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), "Widget", "", decimal.NewFromInt(10), 5)
		require.NoError(t, err)

		require.NoError(t, product.ReceiveStock(5, decimal.NewFromFloat(4.00)))
		assert.True(t, decimal.NewFromFloat(4.00).Equal(product.CostPrice))
		assert.Equal(t, 10, product.StockQty)
	})

	t.Run("rejects non-positive quantity and cost", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.ReceiveStock(0, decimal.NewFromInt(5)))
		assert.Error(t, product.ReceiveStock(-1, decimal.NewFromInt(5)))
		assert.Error(t, product.ReceiveStock(1, decimal.Zero))
	})

	t.Run("increments version", func(t *testing.T) {
		product := createTestProduct(t)
		before := product.Version
		require.NoError(t, product.ReceiveStock(1, decimal.NewFromInt(2)))
		assert.Equal(t, before+1, product.Version)
	})
}

func TestProduct_DeductStock(t *testing.T) {
	t.Run("deducts available stock", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(10, decimal.NewFromInt(5)))

		err := product.DeductStock(4)
		require.NoError(t, err)
		assert.Equal(t, 6, product.StockQty)
	})

	t.Run("never goes negative", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(5, decimal.NewFromInt(5)))

		err := product.DeductStock(6)
		assert.Error(t, err)
		assert.Equal(t, 5, product.StockQty, "failed deduction must not mutate stock")
	})

	t.Run("allows deducting to exactly zero", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(5, decimal.NewFromInt(5)))

		require.NoError(t, product.DeductStock(5))
		assert.Equal(t, 0, product.StockQty)
	})

	t.Run("does not touch cost prices", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ReceiveStock(10, decimal.NewFromFloat(5.00)))
		require.NoError(t, product.ReceiveStock(10, decimal.NewFromFloat(7.00)))

		require.NoError(t, product.DeductStock(15))
		assert.True(t, decimal.NewFromFloat(6.00).Equal(product.CostPrice))
		assert.True(t, decimal.NewFromFloat(7.00).Equal(product.LastCostPrice))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.DeductStock(0))
		assert.Error(t, product.DeductStock(-3))
	})
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product := createTestProduct(t)

	product.Deactivate()
	assert.False(t, product.IsActive())

	product.Activate()
	assert.True(t, product.IsActive())
}

func TestProduct_StockValue(t *testing.T) {
	product := createTestProduct(t)
	require.NoError(t, product.ReceiveStock(4, decimal.NewFromFloat(2.50)))

	assert.True(t, decimal.NewFromInt(10).Equal(product.StockValue()))
}
