package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ASC; DROP TABLE products"))
}

func TestValidateSortField(t *testing.T) {
	t.Run("allows whitelisted fields", func(t *testing.T) {
		assert.Equal(t, "sku", ValidateSortField("sku", ProductSortFields, "created_at"))
		assert.Equal(t, "order_number", ValidateSortField("order_number", SalesOrderSortFields, "created_at"))
	})

	t.Run("falls back to default for unknown fields", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("password", ProductSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("name; DROP TABLE", ProductSortFields, "created_at"))
	})

	t.Run("falls back to default for empty input", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("", SupplierSortFields, "name"))
		assert.Equal(t, "name", ValidateSortField("   ", SupplierSortFields, "name"))
	})
}
