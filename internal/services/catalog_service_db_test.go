// internal/services/catalog_service_db_test.go
package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/threadcart/threadcart-backend/internal/models"
)

func productRow(id uuid.UUID, discount float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "discount_price", "category_id", "material", "status",
	}).AddRow(
		id.String(), "Linen Shirt", "Relaxed fit", 59.99, discount, uuid.NewString(), "Linen", "PUBLISHED",
	)
}

// An update request that omits discount_price must leave the stored discount
// alone: the column stays out of the SET clause entirely.
func TestUpdateProductKeepsStoredDiscountWhenOmitted(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db)

	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(productRow(id, 40.0))

	mock.ExpectBegin()
	// Six scalar fields plus updated_at plus the id predicate; a discount
	// column in the SET clause would make this an eight-plus-one exec and
	// fail the match.
	mock.ExpectExec(`UPDATE "products" SET`).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(productRow(id, 40.0))
	mock.ExpectQuery(`SELECT \* FROM "product_assets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := validCreateProductRequest()
	req.DiscountPrice = nil
	req.Assets = nil
	req.Tags = nil

	product, err := svc.UpdateProduct(id, &req)
	assert.NoError(t, err)
	assert.NotNil(t, product.DiscountPrice)
	assert.Equal(t, 40.0, *product.DiscountPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The color's asset set is replaced, not merged: every stored asset for the
// color is deleted, the name updated, and the new set inserted, strictly in
// that order inside one transaction.
func TestUpdateColorReplacesAssetSetInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "product_assets" WHERE color_id`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "product_colors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "product_assets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(uuid.NewString()).
			AddRow(uuid.NewString()))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "product_colors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name"}).
			AddRow(id.String(), uuid.NewString(), "Indigo"))
	mock.ExpectQuery(`SELECT \* FROM "product_assets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "color_id", "url", "type"}).
			AddRow(uuid.NewString(), id.String(), "https://cdn.example.com/a.jpg", "IMAGE").
			AddRow(uuid.NewString(), id.String(), "https://cdn.example.com/b.jpg", "IMAGE"))
	mock.ExpectQuery(`SELECT \* FROM "product_variants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := &UpdateColorRequest{
		Name: "Indigo",
		Assets: []AssetInput{
			{URL: "https://cdn.example.com/a.jpg", Type: models.AssetTypeImage},
			{URL: "https://cdn.example.com/b.jpg", Type: models.AssetTypeImage},
		},
	}

	color, err := svc.UpdateColor(id, req)
	assert.NoError(t, err)
	assert.Equal(t, "Indigo", color.Name)
	assert.Len(t, color.Assets, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When the name update matches no row the whole transaction rolls back, so
// the asset delete that ran first is never committed on its own.
func TestUpdateColorRollsBackWhenColorMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCatalogService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "product_assets" WHERE color_id`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "product_colors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.UpdateColor(uuid.New(), &UpdateColorRequest{Name: "Indigo"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "color not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
