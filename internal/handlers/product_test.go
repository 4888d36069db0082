// internal/handlers/product_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/threadcart/threadcart-backend/internal/utils"
)

// The suite drives the handlers through a router with no service state
// behind them; every case here must fail request validation before any
// service call happens.
type ProductValidationTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *ProductValidationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	handler := NewProductHandler(nil)

	suite.router = gin.New()
	products := suite.router.Group("/products")
	{
		products.POST("", handler.CreateProduct)
		products.POST("/color", handler.AddColor)
		products.POST("/sizes", handler.AddSizes)
		products.PATCH("/color/:id", handler.UpdateColor)
		products.PATCH("/stock", handler.UpdateStock)
		products.PATCH("/:id", handler.UpdateProduct)
		products.PATCH("/:id/status", handler.UpdateStatus)
		products.DELETE("/asset/:id", handler.DeleteAsset)
		products.GET("/:id", handler.GetProduct)
	}
}

func (suite *ProductValidationTestSuite) postJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductValidationTestSuite) decodeError(w *httptest.ResponseRecorder) utils.APIResponse {
	var response utils.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Success)
	assert.NotNil(suite.T(), response.Error)
	return response
}

func (suite *ProductValidationTestSuite) TestCreateProductEmptyBody() {
	w := suite.postJSON("POST", "/products", map[string]interface{}{})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestCreateProductBadAssetType() {
	w := suite.postJSON("POST", "/products", map[string]interface{}{
		"name":        "Linen Shirt",
		"description": "Relaxed fit",
		"price":       59.99,
		"category_id": "0b46b8ae-9b0c-4e57-9d6f-02f7f5dd2a41",
		"material":    "Linen",
		"status":      "PUBLISHED",
		"assets": []map[string]string{
			{"url": "https://cdn.example.com/a.jpg", "type": "AUDIO"},
		},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestAddColorMissingProduct() {
	w := suite.postJSON("POST", "/products/color", map[string]interface{}{
		"color": "Indigo",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestAddSizesEmptyList() {
	w := suite.postJSON("POST", "/products/sizes", map[string]interface{}{
		"color_id": "0b46b8ae-9b0c-4e57-9d6f-02f7f5dd2a41",
		"sizes":    []interface{}{},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestUpdateStockNegative() {
	w := suite.postJSON("PATCH", "/products/stock", map[string]interface{}{
		"variant_id": "0b46b8ae-9b0c-4e57-9d6f-02f7f5dd2a41",
		"stock":      -5,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestUpdateColorInvalidID() {
	w := suite.postJSON("PATCH", "/products/color/not-a-uuid", map[string]interface{}{
		"name": "Indigo",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "BAD_REQUEST", response.Error.Code)
	assert.Equal(suite.T(), "Invalid color ID", response.Error.Message)
}

func (suite *ProductValidationTestSuite) TestUpdateStatusRejectsUnknownStatus() {
	w := suite.postJSON("PATCH", "/products/0b46b8ae-9b0c-4e57-9d6f-02f7f5dd2a41/status", map[string]interface{}{
		"status": "ARCHIVED",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestDeleteAssetInvalidID() {
	req, _ := http.NewRequest("DELETE", "/products/asset/42", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	response := suite.decodeError(w)
	assert.Equal(suite.T(), "BAD_REQUEST", response.Error.Code)
}

func (suite *ProductValidationTestSuite) TestGetProductInvalidID() {
	req, _ := http.NewRequest("GET", "/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func TestProductValidationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductValidationTestSuite))
}
