// internal/services/shipping_service.go
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/config"
	"github.com/threadcart/threadcart-backend/internal/models"
)

// ShippingService is the narrow interface to the Shiprocket carrier API:
// authenticate, create an adhoc order, cancel by carrier order id.
type ShippingService struct {
	db     *gorm.DB
	cfg    *config.Config
	client *http.Client

	mtx         sync.Mutex
	token       string
	tokenExpiry time.Time
}

type CreateShipmentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type CancelShipmentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type ShipmentResult struct {
	CarrierOrderID string `json:"carrier_order_id"`
	ShipmentID     string `json:"shipment_id"`
	AWBCode        string `json:"awb_code"`
	Status         string `json:"status"`
}

type carrierAuthResponse struct {
	Token string `json:"token"`
}

type carrierOrderResponse struct {
	OrderID    json.Number `json:"order_id"`
	ShipmentID json.Number `json:"shipment_id"`
	AWBCode    string      `json:"awb_code"`
	Status     string      `json:"status"`
}

func NewShippingService(db *gorm.DB, cfg *config.Config) *ShippingService {
	return &ShippingService{
		db:     db,
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// authToken logs in against the carrier when the cached token is stale.
// Shiprocket tokens are valid for ten days; refresh well before that.
func (s *ShippingService) authToken() (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    s.cfg.Shipping.Email,
		"password": s.cfg.Shipping.Password,
	})

	resp, err := s.client.Post(s.cfg.Shipping.BaseURL+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("carrier auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("carrier auth failed with status %d", resp.StatusCode)
	}

	var auth carrierAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode carrier auth response: %w", err)
	}

	s.token = auth.Token
	s.tokenExpiry = time.Now().Add(7 * 24 * time.Hour)
	return s.token, nil
}

func (s *ShippingService) carrierPost(path string, body interface{}, out interface{}) error {
	token, err := s.authToken()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode carrier request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.Shipping.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build carrier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("carrier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("carrier request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode carrier response: %w", err)
		}
	}

	return nil
}

// CreateShipment registers the order with the carrier and stores the handles
// it returns on the order row.
func (s *ShippingService) CreateShipment(req *CreateShipmentRequest) (*ShipmentResult, error) {
	var order models.Order
	if err := s.db.Preload("User").First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.CarrierOrderID != "" {
		return nil, errors.New("order already has a shipment")
	}

	payload := map[string]interface{}{
		"order_id":            order.ID.String(),
		"order_date":          order.CreatedAt.Format("2006-01-02 15:04"),
		"pickup_location":     s.cfg.Shipping.PickupLocation,
		"billing_address":     order.ShippingAddress,
		"shipping_is_billing": true,
		"order_items":         order.Items,
		"sub_total":           order.Total,
		"payment_method":      "Prepaid",
	}

	var carrierResp carrierOrderResponse
	if err := s.carrierPost("/orders/create/adhoc", payload, &carrierResp); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"carrier_order_id": carrierResp.OrderID.String(),
		"awb_code":         carrierResp.AWBCode,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to record shipment: %w", err)
	}

	return &ShipmentResult{
		CarrierOrderID: carrierResp.OrderID.String(),
		ShipmentID:     carrierResp.ShipmentID.String(),
		AWBCode:        carrierResp.AWBCode,
		Status:         carrierResp.Status,
	}, nil
}

// CancelShipment cancels the carrier order linked to the given order.
func (s *ShippingService) CancelShipment(req *CancelShipmentRequest) error {
	var order models.Order
	if err := s.db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("order not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if order.CarrierOrderID == "" {
		return errors.New("order has no shipment to cancel")
	}

	payload := map[string]interface{}{
		"ids": []string{order.CarrierOrderID},
	}

	if err := s.carrierPost("/orders/cancel", payload, nil); err != nil {
		return err
	}

	updates := map[string]interface{}{
		"carrier_order_id": "",
		"awb_code":         "",
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to clear shipment: %w", err)
	}

	return nil
}
