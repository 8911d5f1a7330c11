package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockItemRepository(t *testing.T) (*GormInventoryItemRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInventoryItemRepository(gormDB), mock, mockDB
}

func itemRows(itemID, supplierID uuid.UUID, quantity, version int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "quantity", "price", "minimum_quantity",
		"supplier_id", "created_by", "updated_by", "version",
	}).AddRow(
		itemID, "Widget", quantity, decimal.NewFromFloat(9.50), 10,
		supplierID, "alice", "alice", version,
	)
}

func TestGormInventoryItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnRows(itemRows(itemID, supplierID, 25, 1))

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "Widget", item.Name)
		assert.Equal(t, 25, item.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the row", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(itemID, 1).
			WillReturnRows(itemRows(itemID, supplierID, 10, 3))

		item, err := repo.FindByIDForUpdate(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 3, item.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByIDForUpdate(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a lock wait timeout to a concurrency conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(itemID, 1).
			WillReturnError(context.DeadlineExceeded)

		item, err := repo.FindByIDForUpdate(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindDuplicate(t *testing.T) {
	t.Run("finds item with same name and price", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		supplierID := uuid.New()
		price := decimal.NewFromFloat(9.50)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE LOWER\(name\) = LOWER\(\$1\) AND price = \$2`).
			WithArgs("widget", price, 1).
			WillReturnRows(itemRows(itemID, supplierID, 25, 1))

		item, err := repo.FindDuplicate(context.Background(), "widget", price, uuid.Nil)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the given ID", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()
		price := decimal.NewFromFloat(9.50)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE \(?LOWER\(name\) = LOWER\(\$1\) AND price = \$2\)? AND id <> \$3`).
			WithArgs("widget", price, excludeID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindDuplicate(context.Background(), "widget", price, excludeID)

		assert.NoError(t, err)
		assert.Nil(t, item)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when there is no duplicate", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items"`).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindDuplicate(context.Background(), "widget", decimal.NewFromInt(1), uuid.Nil)

		assert.NoError(t, err)
		assert.Nil(t, item)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindBelowMinimum(t *testing.T) {
	t.Run("finds items at or below their threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE quantity <= minimum_quantity`).
			WillReturnRows(itemRows(itemID, supplierID, 3, 1))

		items, err := repo.FindBelowMinimum(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_SearchByName(t *testing.T) {
	t.Run("searches case-insensitively ordered by price", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE LOWER\(name\) LIKE LOWER\(\$1\) ORDER BY price ASC`).
			WithArgs("%wid%").
			WillReturnRows(itemRows(itemID, supplierID, 25, 1))

		items, err := repo.SearchByName(context.Background(), "wid", shared.Filter{})

		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Widget", items[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_Save(t *testing.T) {
	t.Run("maps a unique violation to a conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewInventoryItem("Widget", 25, decimal.NewFromFloat(9.50), 10, uuid.New(), "alice")
		require.NoError(t, err)

		// Two writers racing past the duplicate pre-check; the index wins
		mock.ExpectExec(`UPDATE "inventory_items" SET`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), item)

		assert.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_TotalPerSupplier(t *testing.T) {
	t.Run("sums quantities per supplier, largest first", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		first := uuid.New()
		second := uuid.New()

		mock.ExpectQuery(`SELECT suppliers\.id AS supplier_id, suppliers\.name AS supplier_name, SUM\(inventory_items\.quantity\) AS total_quantity FROM "inventory_items" JOIN suppliers ON suppliers\.id = inventory_items\.supplier_id GROUP BY suppliers\.id, suppliers\.name ORDER BY total_quantity DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"supplier_id", "supplier_name", "total_quantity"}).
				AddRow(first, "Acme", 120).
				AddRow(second, "Globex", 45))

		totals, err := repo.TotalPerSupplier(context.Background())

		assert.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "Acme", totals[0].SupplierName)
		assert.Equal(t, int64(120), totals[0].TotalQuantity)
		assert.Equal(t, second, totals[1].SupplierID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_SaveWithVersion(t *testing.T) {
	t.Run("updates when the stored version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewInventoryItem("Widget", 25, decimal.NewFromFloat(9.50), 10, uuid.New(), "alice")
		require.NoError(t, err)
		item.IncrementVersion()

		mock.ExpectExec(`UPDATE "inventory_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithVersion(context.Background(), item)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a concurrency conflict when another writer won", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewInventoryItem("Widget", 25, decimal.NewFromFloat(9.50), 10, uuid.New(), "alice")
		require.NoError(t, err)
		item.IncrementVersion()

		mock.ExpectExec(`UPDATE "inventory_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithVersion(context.Background(), item)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_Delete(t *testing.T) {
	t.Run("deletes existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), itemID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_Count(t *testing.T) {
	t.Run("counts items", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(15), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
