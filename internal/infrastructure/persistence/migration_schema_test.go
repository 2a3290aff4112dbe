package persistence

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/partner"
	"github.com/scm/backend/internal/domain/trade"
)

// The package tests run against AutoMigrate, so a column present on a
// model but missing from the SQL migration only surfaces in production.
// This test cross-checks every model column against the migration DDL.
func TestMigrationCoversModelColumns(t *testing.T) {
	tables := parseMigrationTables(t, filepath.Join("..", "..", "..", "migrations", "000001_init.up.sql"))

	models := []interface{}{
		&catalog.Product{},
		&partner.Supplier{},
		&partner.Warehouse{},
		&inventory.InventoryItem{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
		&trade.ItemAllocation{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderItem{},
		&fulfillment.Shipment{},
		&fulfillment.Return{},
		&fulfillment.ReturnItem{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		parsed, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		t.Run(parsed.Table, func(t *testing.T) {
			columns, ok := tables[parsed.Table]
			require.True(t, ok, "migration does not create table %s", parsed.Table)

			for _, field := range parsed.Fields {
				if field.DBName == "" {
					continue // not persisted (gorm:"-" or relation)
				}
				assert.Contains(t, columns, field.DBName,
					"table %s is missing column %s", parsed.Table, field.DBName)
			}
		})
	}
}

// parseMigrationTables extracts table -> column set from the CREATE TABLE
// statements. Every body line in the migration starts with the column name,
// so the first token of each line is enough.
func parseMigrationTables(t *testing.T, path string) map[string]map[string]bool {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	tables := make(map[string]map[string]bool)
	var current map[string]bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "CREATE TABLE "):
			name := strings.TrimSuffix(strings.Fields(line)[2], "(")
			current = make(map[string]bool)
			tables[name] = current
		case current != nil && strings.HasPrefix(line, ");"):
			current = nil
		case current != nil && line != "":
			current[strings.Fields(line)[0]] = true
		}
	}
	require.NoError(t, scanner.Err())
	require.NotEmpty(t, tables)

	return tables
}
