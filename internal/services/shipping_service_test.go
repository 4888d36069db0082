// internal/services/shipping_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/threadcart/threadcart-backend/internal/config"
)

func shippingConfig(baseURL string) *config.Config {
	return &config.Config{
		Shipping: config.ShippingConfig{
			BaseURL:        baseURL,
			Email:          "ops@threadcart.io",
			Password:       "carrier-password",
			PickupLocation: "Primary",
		},
	}
}

func TestAuthTokenCachesAcrossCalls(t *testing.T) {
	var loginCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ops@threadcart.io", creds["email"])

		loginCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "carrier-token"})
	}))
	defer server.Close()

	svc := NewShippingService(nil, shippingConfig(server.URL))

	token, err := svc.authToken()
	assert.NoError(t, err)
	assert.Equal(t, "carrier-token", token)

	// Second call must reuse the cached token
	token, err = svc.authToken()
	assert.NoError(t, err)
	assert.Equal(t, "carrier-token", token)
	assert.Equal(t, 1, loginCalls)
}

func TestAuthTokenFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewShippingService(nil, shippingConfig(server.URL))

	_, err := svc.authToken()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestCarrierPostSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"token": "carrier-token"})
		case "/orders/create/adhoc":
			assert.Equal(t, "Bearer carrier-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"order_id":    411923,
				"shipment_id": 390812,
				"awb_code":    "AWB123",
				"status":      "NEW",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc := NewShippingService(nil, shippingConfig(server.URL))

	var resp carrierOrderResponse
	err := svc.carrierPost("/orders/create/adhoc", map[string]string{"order_id": "local-1"}, &resp)
	assert.NoError(t, err)
	assert.Equal(t, "411923", resp.OrderID.String())
	assert.Equal(t, "AWB123", resp.AWBCode)
	assert.Equal(t, "NEW", resp.Status)
}

func TestCarrierPostPropagatesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(map[string]string{"token": "carrier-token"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewShippingService(nil, shippingConfig(server.URL))

	err := svc.carrierPost("/orders/cancel", map[string]interface{}{"ids": []string{"411923"}}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
