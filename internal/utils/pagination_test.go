// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/products"+query, nil)

	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Empty(t, params.Search)
	assert.Empty(t, params.Status)
}

func TestGetPaginationParamsExplicit(t *testing.T) {
	params := paramsForQuery(t, "?page=3&limit=25&search=linen&status=PUBLISHED")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, "linen", params.Search)
	assert.Equal(t, "PUBLISHED", params.Status)
}

func TestGetPaginationParamsClamping(t *testing.T) {
	params := paramsForQuery(t, "?page=0&limit=0")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)

	params = paramsForQuery(t, "?page=-5&limit=500")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)

	params = paramsForQuery(t, "?page=abc&limit=xyz")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}
	data := []string{"a", "b", "c"}

	result := CreatePaginationResult(data, 45, params)

	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 10, result.ItemsPerPage)
	assert.Equal(t, int64(45), result.TotalItems)
	assert.Equal(t, 5, result.TotalPages)
	assert.Equal(t, data, result.Data)
}

func TestCreatePaginationResultRoundsUp(t *testing.T) {
	params := PaginationParams{Page: 1, Limit: 10}

	result := CreatePaginationResult(nil, 41, params)
	assert.Equal(t, 5, result.TotalPages)

	result = CreatePaginationResult(nil, 40, params)
	assert.Equal(t, 4, result.TotalPages)

	result = CreatePaginationResult(nil, 0, params)
	assert.Equal(t, 0, result.TotalPages)
}
