// internal/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/threadcart/threadcart-backend/internal/models"
	"github.com/threadcart/threadcart-backend/internal/utils"
)

func intPtr(v int) *int { return &v }

func validCreateProductRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Linen Shirt",
		Description: "Relaxed fit, breathable linen",
		Price:       59.99,
		CategoryID:  uuid.New(),
		Material:    "Linen",
		Status:      models.ProductStatusPublished,
		Assets: []AssetInput{
			{URL: "https://cdn.example.com/shirt-front.jpg", Type: models.AssetTypeImage},
		},
		Tags: []string{"summer", "linen"},
	}
}

func TestCreateProductRequestValidation(t *testing.T) {
	req := validCreateProductRequest()
	assert.NoError(t, utils.ValidateStruct(&req))

	missing := CreateProductRequest{}
	err := utils.ValidateStruct(&missing)
	assert.Error(t, err)
	assert.NotEmpty(t, utils.GetValidationErrors(err))
}

func TestCreateProductRequestRejectsBadStatus(t *testing.T) {
	req := validCreateProductRequest()
	req.Status = "ARCHIVED"

	err := utils.ValidateStruct(&req)
	assert.Error(t, err)

	validationErrors := utils.GetValidationErrors(err)
	assert.Len(t, validationErrors, 1)
	assert.Equal(t, "oneof", validationErrors[0].Tag)
}

func TestCreateProductRequestRejectsBadAsset(t *testing.T) {
	req := validCreateProductRequest()
	req.Assets = []AssetInput{{URL: "not-a-url", Type: "AUDIO"}}

	err := utils.ValidateStruct(&req)
	assert.Error(t, err)

	validationErrors := utils.GetValidationErrors(err)
	assert.Len(t, validationErrors, 2)
}

func TestCreateProductRequestRejectsZeroPrice(t *testing.T) {
	req := validCreateProductRequest()
	req.Price = 0

	assert.Error(t, utils.ValidateStruct(&req))
}

func TestSizeInputStockBounds(t *testing.T) {
	valid := SizeInput{Size: models.SizeM, Stock: intPtr(0)}
	assert.NoError(t, utils.ValidateStruct(&valid))

	negative := SizeInput{Size: models.SizeM, Stock: intPtr(-1)}
	assert.Error(t, utils.ValidateStruct(&negative))

	missing := SizeInput{Size: models.SizeM}
	assert.Error(t, utils.ValidateStruct(&missing))

	badSize := SizeInput{Size: "XXXL", Stock: intPtr(5)}
	assert.Error(t, utils.ValidateStruct(&badSize))
}

func TestAddSizesRequestRequiresSizes(t *testing.T) {
	req := AddSizesRequest{ColorID: uuid.New()}
	assert.Error(t, utils.ValidateStruct(&req))

	req.Sizes = []SizeInput{{Size: models.SizeL, Stock: intPtr(3)}}
	assert.NoError(t, utils.ValidateStruct(&req))
}

func TestUpdateStockRequestValidation(t *testing.T) {
	req := UpdateStockRequest{VariantID: uuid.New(), Stock: intPtr(12)}
	assert.NoError(t, utils.ValidateStruct(&req))

	req.Stock = nil
	assert.Error(t, utils.ValidateStruct(&req))

	req = UpdateStockRequest{Stock: intPtr(12)}
	assert.Error(t, utils.ValidateStruct(&req))
}

func TestFormatGrowth(t *testing.T) {
	assert.Equal(t, "0%", FormatGrowth(0, 0))
	assert.Equal(t, "0%", FormatGrowth(100, 0))
	assert.Equal(t, "0.0%", FormatGrowth(0, 1000))
	assert.Equal(t, "10.0%", FormatGrowth(100, 1000))
	assert.Equal(t, "33.3%", FormatGrowth(1, 3))
	assert.Equal(t, "100.0%", FormatGrowth(500, 500))
}
